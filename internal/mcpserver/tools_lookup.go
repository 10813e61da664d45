package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerLookupTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_leaderboard",
			mcp.WithDescription("Top players by total score"),
			mcp.WithNumber("limit", mcp.Description("Number of players, default 10, max 100")),
		),
		s.handleGetLeaderboard,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_game",
			mcp.WithDescription("Look up one game by id"),
			mcp.WithString("game_id", mcp.Required(), mcp.Description("Game id")),
		),
		s.handleGetGame,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_player",
			mcp.WithDescription("Look up a player's totals by wallet address"),
			mcp.WithString("address", mcp.Required(), mcp.Description("Wallet address")),
		),
		s.handleGetPlayer,
	)
}

func (s *Server) handleGetLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := clampLimit(request.GetInt("limit", defaultLeaderboardLimit), defaultLeaderboardLimit, maxLeaderboardLimit)
	items, err := s.lookup.Leaderboard(ctx, limit)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(map[string]any{"items": items, "limit": limit}), nil
}

func (s *Server) handleGetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gameID, err := request.RequireString("game_id")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	game, err := s.lookup.Game(ctx, gameID)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(game), nil
}

func (s *Server) handleGetPlayer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	address, err := request.RequireString("address")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	user, err := s.lookup.User(ctx, address)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(user), nil
}
