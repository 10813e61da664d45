package mcpserver

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
