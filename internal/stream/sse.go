package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WriteSSE writes one event frame. Events without an id (the initial
// snapshot, pings) leave the client's Last-Event-ID untouched.
func WriteSSE(w http.ResponseWriter, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if ev.EventID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", ev.EventID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "event: %s\n", ev.Event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return nil
}

// SetSSEHeaders applies headers that keep event streams stable across proxies.
func SetSSEHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache, no-transform")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	h.Set("X-Content-Type-Options", "nosniff")
}

// WriteRetry tells the client how long to wait before reconnecting.
func WriteRetry(w http.ResponseWriter, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "retry: %d\n\n", d.Milliseconds())
	return err
}
