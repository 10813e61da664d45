// Package render formats game state as plain text for terminals.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"fhe-dice/internal/backend"
	"fhe-dice/internal/play"
)

var diceFaces = map[int]string{1: "⚀", 2: "⚁", 3: "⚂", 4: "⚃", 5: "⚄", 6: "⚅"}

// DiceFace returns the glyph for v; out-of-range values show as one.
func DiceFace(v int) string {
	if f, ok := diceFaces[v]; ok {
		return f
	}
	return diceFaces[1]
}

func DiceFaces(values []int) string {
	faces := make([]string, 0, len(values))
	for _, v := range values {
		faces = append(faces, DiceFace(v))
	}
	return strings.Join(faces, " ")
}

// ShortAddress renders 0x1234...abcd.
func ShortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

func PlayerLabel(addr *string) string {
	if addr == nil || *addr == "" {
		return "Anonymous"
	}
	return ShortAddress(*addr)
}

func RarityLabel(r backend.Rarity) string {
	switch r {
	case backend.RarityUncommon, backend.RarityRare, backend.RarityEpic, backend.RarityLegendary:
		return string(r)
	default:
		return string(backend.RarityCommon)
	}
}

// LocalTime formats ts as a wall-clock time in loc.
func LocalTime(ts backend.Timestamp, loc *time.Location) string {
	if ts.IsZero() {
		return "-"
	}
	if loc == nil {
		loc = time.Local
	}
	return ts.In(loc).Format("15:04:05")
}

func ModeLabel(m backend.Mode) string {
	if m == backend.ModeEncrypted {
		return "encrypted"
	}
	return "standard"
}

func WriteState(w io.Writer, st play.State) {
	switch st.Phase {
	case play.PhaseRolling:
		fmt.Fprintln(w, "Rolling...")
	case play.PhaseConnecting:
		fmt.Fprintln(w, "Connecting wallet...")
	case play.PhaseResolved:
		if st.Result == nil {
			return
		}
		fmt.Fprintf(w, "%s  Score: %d  (%s)\n", DiceFaces(st.Result.DiceResults), st.Result.TotalScore, ModeLabel(st.Mode))
		if st.Result.NFTGenerated {
			WriteNFT(w, st.Result.NFTMetadata)
		}
	case play.PhaseFailed:
		if st.Failure != nil {
			fmt.Fprintf(w, "Error: %s\n", st.Failure.Message)
		}
	default:
		fmt.Fprintf(w, "%s %s  Ready to roll\n", DiceFace(1), DiceFace(1))
	}
}

func WriteNFT(w io.Writer, meta *backend.NFTMetadata) {
	fmt.Fprintln(w, "NFT Generated!")
	if meta == nil {
		return
	}
	fmt.Fprintf(w, "  %s\n", meta.Name)
	if meta.Description != "" {
		fmt.Fprintf(w, "  %s\n", meta.Description)
	}
	fmt.Fprintf(w, "  Rarity: %s  Score: %d\n", RarityLabel(meta.Attributes.Rarity), meta.Attributes.TotalScore)
}

func WriteSnapshot(w io.Writer, snap play.Snapshot) {
	account := "not connected"
	if snap.Account != "" {
		account = ShortAddress(snap.Account)
	}
	mode := "standard"
	if snap.Account != "" && snap.EncryptionReady {
		mode = "encrypted"
	}
	fmt.Fprintf(w, "Wallet: %s  Mode: %s\n", account, mode)
	WriteState(w, snap.State)
	if snap.Notice != "" {
		fmt.Fprintf(w, "Notice: %s\n", snap.Notice)
	}
}

func WriteStats(w io.Writer, s *backend.Stats) {
	var games, nfts, users int
	if s != nil {
		games, nfts, users = s.TotalGames, s.TotalNFTs, s.TotalUsers
	}
	fmt.Fprintf(w, "Total games: %d\nNFTs generated: %d\nPlayers: %d\n", games, nfts, users)
}

func WriteHistory(w io.Writer, games []backend.HistoryEntry, loc *time.Location) error {
	if len(games) == 0 {
		_, err := fmt.Fprintln(w, "No games yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tDICE\tSCORE\tNFT\tTIME")
	for _, g := range games {
		nft := "none"
		if g.NFTGenerated {
			nft = "generated"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", PlayerLabel(g.PlayerAddress), DiceFaces(g.DiceResults), g.TotalScore, nft, LocalTime(g.Timestamp, loc))
	}
	return tw.Flush()
}

func WriteLeaderboard(w io.Writer, entries []backend.LeaderboardEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No players yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPLAYER\tSCORE\tGAMES")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", i+1, PlayerLabel(e.PlayerAddress), e.TotalScore, e.GamesPlayed)
	}
	return tw.Flush()
}
