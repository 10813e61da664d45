package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPlayTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"roll_dice",
			mcp.WithDescription("Roll two dice. Plays encrypted when a wallet is connected and encryption is ready, standard otherwise. Returns the resolved or failed state."),
		),
		s.handleRollDice,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"connect_wallet",
			mcp.WithDescription("Request wallet authorization and switch the wallet to the game network"),
		),
		s.handleConnectWallet,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_state",
			mcp.WithDescription("Current roll state, wallet account, encryption readiness, cached stats and history"),
		),
		s.handleGetState,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"refresh",
			mcp.WithDescription("Reload game statistics and recent games from the server"),
		),
		s.handleRefresh,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"dismiss",
			mcp.WithDescription("Dismiss the current notice or NFT announcement"),
			mcp.WithString("target", mcp.Required(), mcp.Description("notice|nft")),
		),
		s.handleDismiss,
	)
}

func (s *Server) handleRollDice(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.game.Roll(ctx)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(st), nil
}

func (s *Server) handleConnectWallet(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.game.Connect(ctx); err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(s.game.Snapshot()), nil
}

func (s *Server) handleGetState(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.game.Snapshot()), nil
}

// handleRefresh reports partial failures through the snapshot notice; the
// cached values stay usable either way.
func (s *Server) handleRefresh(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_ = s.game.Refresh(ctx)
	return toolResult(s.game.Snapshot()), nil
}

func (s *Server) handleDismiss(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := request.RequireString("target")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	switch target {
	case "notice":
		s.game.DismissNotice()
	case "nft":
		s.game.DismissNFT()
	default:
		return toolError("invalid_request", "target must be notice|nft"), nil
	}
	return toolResult(s.game.Snapshot()), nil
}
