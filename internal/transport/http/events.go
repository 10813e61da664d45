package httptransport

import (
	"net/http"
	"time"

	"fhe-dice/internal/stream"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const reconnectDelay = 3 * time.Second

// EventsHandler streams orchestrator snapshots. A reconnecting client with
// Last-Event-ID gets the buffered events it missed. A fresh client, or one
// whose id the buffer no longer covers, starts from the current snapshot.
func EventsHandler(game Game, pingInterval time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			WriteHTTPError(w, http.StatusInternalServerError, "stream_not_supported")
			return
		}

		metricSSEConnectionsTotal.Add(1)
		metricSSEConnectionsActive.Add(1)
		defer metricSSEConnectionsActive.Add(-1)

		ch, cancel := game.Subscribe()
		defer cancel()

		stream.SetSSEHeaders(w)
		reqID := chimw.GetReqID(r.Context())
		log.Info().Str("request_id", reqID).Msg("sse stream opened")

		if err := stream.WriteRetry(w, reconnectDelay); err != nil {
			return
		}

		var replay []stream.Event
		if lastEventID := r.Header.Get("Last-Event-ID"); lastEventID != "" {
			events, ok := game.Replay(lastEventID)
			if !ok {
				log.Info().Str("request_id", reqID).Str("last_event_id", lastEventID).Msg("sse replay gap, sending snapshot")
			}
			replay = events
		}
		if len(replay) == 0 {
			replay = []stream.Event{{Event: "snapshot", ServerTS: time.Now().UnixMilli(), Data: game.Snapshot()}}
		}
		for _, ev := range replay {
			if err := stream.WriteSSE(w, ev); err != nil {
				return
			}
		}
		flusher.Flush()

		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-r.Context().Done():
				log.Info().Str("request_id", reqID).Err(r.Context().Err()).Msg("sse stream closed")
				return
			case ev, ok := <-ch:
				if !ok {
					log.Info().Str("request_id", reqID).Msg("sse stream channel closed")
					return
				}
				if err := stream.WriteSSE(w, ev); err != nil {
					return
				}
				log.Debug().Str("request_id", reqID).Str("event_id", ev.EventID).Str("roll_id", ev.RollID).Msg("sse event sent")
				flusher.Flush()
			case <-ticker.C:
				ping := stream.Event{Event: "ping", ServerTS: time.Now().UnixMilli(), Data: map[string]any{"ts": time.Now().UnixMilli()}}
				if err := stream.WriteSSE(w, ping); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
