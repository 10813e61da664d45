package mcpserver

import (
	"context"
	"net/http"

	"fhe-dice/internal/backend"
	"fhe-dice/internal/play"

	"github.com/mark3labs/mcp-go/server"
)

// Game is the orchestrator surface the tools drive.
type Game interface {
	Roll(ctx context.Context) (play.State, error)
	Connect(ctx context.Context) error
	Refresh(ctx context.Context) error
	Snapshot() play.Snapshot
	DismissNotice()
	DismissNFT()
}

// Lookup serves read-only backend queries outside the play session.
type Lookup interface {
	Leaderboard(ctx context.Context, limit int) ([]backend.LeaderboardEntry, error)
	Game(ctx context.Context, gameID string) (*backend.HistoryEntry, error)
	User(ctx context.Context, address string) (*backend.User, error)
}

type Server struct {
	game   Game
	lookup Lookup

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
}

func New(game Game, lookup Lookup) *Server {
	mcpSrv := server.NewMCPServer(
		"fhe-dice",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s := &Server{
		game:       game,
		lookup:     lookup,
		mcpServer:  mcpSrv,
		httpServer: server.NewStreamableHTTPServer(mcpSrv, server.WithStateLess(true), server.WithDisableStreaming(true)),
	}
	s.registerPlayTools()
	s.registerLookupTools()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer
}
