package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httptransport "fhe-dice/internal/transport/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	var printRoutes bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host one play session behind a local HTTP, SSE and MCP control plane",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			r := httptransport.NewRouter(s.game, s.backend, a.cfg.Serve)
			if printRoutes {
				httptransport.LogRoutes(cmd.OutOrStdout(), r)
			}
			server := &http.Server{
				Addr:              a.cfg.Serve.Addr,
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       10 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", a.cfg.Serve.Addr).Bool("mcp", a.cfg.Serve.MCPEnabled).Msg("http listening")
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			log.Info().Msg("shutting down")
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().BoolVar(&printRoutes, "routes", false, "print registered routes at startup")
	return cmd
}
