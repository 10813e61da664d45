package httptransport

import (
	"expvar"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"fhe-dice/internal/config"
	"fhe-dice/internal/mcpserver"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func NewRouter(game Game, lookup Lookup, cfg config.ServeConfig) *chi.Mux {
	h := NewPlayHandlers(game, lookup)
	ping := cfg.SSEPingInterval
	if ping <= 0 {
		ping = 15 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", h.Health())

	if cfg.MCPEnabled {
		mcpSrv := mcpserver.New(game, lookup)
		r.With(APILogMiddleware()).MethodFunc(http.MethodOptions, "/mcp", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Allow", "POST, GET, DELETE, OPTIONS")
			w.WriteHeader(http.StatusNoContent)
		})
		r.With(APILogMiddleware()).Method(http.MethodPost, "/mcp", mcpSrv.Handler())
		r.With(APILogMiddleware()).Method(http.MethodGet, "/mcp", mcpSrv.Handler())
		r.With(APILogMiddleware()).Method(http.MethodDelete, "/mcp", mcpSrv.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Get("/state", h.State())
		r.Get("/events", EventsHandler(game, ping))
		r.Post("/roll", h.Roll())
		r.Post("/connect", h.Connect())
		r.Post("/refresh", h.Refresh())
		r.Post("/dismiss/{target}", h.Dismiss())

		r.Get("/stats", h.Stats())
		r.Get("/history", h.History())
		r.Get("/leaderboard", h.Leaderboard())
		r.Get("/games/{game_id}", h.Game())
		r.Get("/players/{address}", h.Player())

		r.Get("/debug/vars", expvar.Handler().ServeHTTP)
	})
	return r
}

// LogRoutes writes the registered routes to w, one per line, sorted by path.
func LogRoutes(w io.Writer, r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	var routes []routeDef
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	fmt.Fprintf(w, "dice-client control plane, %d routes:\n", len(routes))
	for _, rt := range routes {
		fmt.Fprintf(w, "  %-7s %s\n", rt.Method, rt.Path)
	}
	log.Debug().Int("routes", len(routes)).Msg("routes registered")
}
