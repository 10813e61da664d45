package httptransport

import (
	"context"
	"net/http"

	"fhe-dice/internal/backend"
	"fhe-dice/internal/mcpserver"
	"fhe-dice/internal/stream"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Game is the orchestrator as the control plane sees it.
type Game interface {
	mcpserver.Game
	Subscribe() (<-chan stream.Event, func())
	Replay(lastEventID string) ([]stream.Event, bool)
}

type Lookup interface {
	mcpserver.Lookup
	Health(ctx context.Context) (*backend.Health, error)
}

type PlayHandlers struct {
	game   Game
	lookup Lookup
}

func NewPlayHandlers(game Game, lookup Lookup) *PlayHandlers {
	return &PlayHandlers{game: game, lookup: lookup}
}

func (h *PlayHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.lookup.Health(r.Context()); err != nil {
			log.Warn().Err(err).Msg("backend health check failed")
			writeJSONStatus(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "backend": "down"})
			return
		}
		writeJSON(w, map[string]any{"ok": true, "backend": "up"})
	}
}

func (h *PlayHandlers) State() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, h.game.Snapshot())
	}
}

func (h *PlayHandlers) Roll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricRollRequests.Add(1)
		st, err := h.game.Roll(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, st)
	}
}

func (h *PlayHandlers) Connect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.game.Connect(r.Context()); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, h.game.Snapshot())
	}
}

// Refresh always answers with the snapshot; a failed half keeps its cached
// value and shows up as the notice.
func (h *PlayHandlers) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = h.game.Refresh(r.Context())
		writeJSON(w, h.game.Snapshot())
	}
}

func (h *PlayHandlers) Dismiss() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "target") {
		case "notice":
			h.game.DismissNotice()
		case "nft":
			h.game.DismissNFT()
		default:
			WriteHTTPError(w, http.StatusNotFound, "unknown_target")
			return
		}
		writeJSON(w, h.game.Snapshot())
	}
}

func (h *PlayHandlers) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap := h.game.Snapshot()
		if snap.Stats == nil {
			writeJSON(w, backend.Stats{})
			return
		}
		writeJSON(w, snap.Stats)
	}
}

func (h *PlayHandlers) History() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"games": h.game.Snapshot().History})
	}
}

func (h *PlayHandlers) Leaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseLimit(r, 10, 100)
		items, err := h.lookup.Leaderboard(r.Context(), limit)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, map[string]any{"items": items, "limit": limit})
	}
}

func (h *PlayHandlers) Game() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, err := h.lookup.Game(r.Context(), chi.URLParam(r, "game_id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, game)
	}
}

func (h *PlayHandlers) Player() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.lookup.User(r.Context(), chi.URLParam(r, "address"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, user)
	}
}

func asRejectedDetail(err error) (string, bool) {
	rejected, ok := backend.AsRejected(err)
	if !ok || rejected.Detail == "" {
		return "", false
	}
	return rejected.Detail, true
}
