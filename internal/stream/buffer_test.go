package stream

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestBufferOrderAndReplay(t *testing.T) {
	buf := NewBuffer(10)
	ev1 := buf.Append("state", "r1", map[string]any{"n": 1})
	ev2 := buf.Append("state", "r1", map[string]any{"n": 2})
	ev3 := buf.Append("state", "r2", map[string]any{"n": 3})

	if ev1.EventID != "1" || ev2.EventID != "2" || ev3.EventID != "3" {
		t.Fatalf("unexpected event ids: %s %s %s", ev1.EventID, ev2.EventID, ev3.EventID)
	}
	replay, ok := buf.ReplayAfter("1")
	if !ok || len(replay) != 2 || replay[0].EventID != "2" || replay[1].EventID != "3" {
		t.Fatalf("unexpected replay: %+v ok=%v", replay, ok)
	}
	if got, ok := buf.ReplayAfter("3"); !ok || len(got) != 0 {
		t.Fatalf("ReplayAfter(newest) = %d events ok=%v, want 0 true", len(got), ok)
	}
}

func TestBufferReplayGaps(t *testing.T) {
	buf := NewBuffer(2)
	for i := 0; i < 5; i++ {
		buf.Append("state", "", i)
	}
	cases := []struct {
		name string
		id   string
		ok   bool
		n    int
	}{
		{name: "empty", id: "", ok: false},
		{name: "unparsable", id: "junk", ok: false},
		{name: "negative", id: "-1", ok: false},
		{name: "ahead of buffer", id: "999999", ok: false},
		{name: "older than oldest", id: "1", ok: false},
		{name: "just before oldest", id: "3", ok: true, n: 2},
		{name: "newest", id: "5", ok: true, n: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := buf.ReplayAfter(tc.id)
			if ok != tc.ok || len(got) != tc.n {
				t.Fatalf("ReplayAfter(%q) = %d events ok=%v, want %d ok=%v", tc.id, len(got), ok, tc.n, tc.ok)
			}
		})
	}
}

func TestBufferReplayBeforeFirstEvent(t *testing.T) {
	buf := NewBuffer(10)
	if got, ok := buf.ReplayAfter("0"); !ok || len(got) != 0 {
		t.Fatalf("ReplayAfter(0) on empty buffer = %d events ok=%v", len(got), ok)
	}
	if _, ok := buf.ReplayAfter("1"); ok {
		t.Fatal("ReplayAfter(1) on empty buffer should not be ok")
	}
}

func TestBufferSubscribeAndClose(t *testing.T) {
	buf := NewBuffer(10)
	ch := buf.Subscribe()
	buf.Append("state", "r1", "x")
	ev := <-ch
	if ev.Event != "state" || ev.RollID != "r1" {
		t.Fatalf("unexpected event: %+v", ev)
	}

	other := buf.Subscribe()
	buf.Unsubscribe(other)
	if _, ok := <-other; ok {
		t.Fatal("unsubscribed channel should be closed")
	}

	buf.Close()
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after Close")
	}
	if ev := buf.Append("state", "", nil); ev.EventID != "" {
		t.Fatalf("Append after Close = %+v, want zero event", ev)
	}
	late := buf.Subscribe()
	if _, ok := <-late; ok {
		t.Fatal("subscribe after Close should return a closed channel")
	}
}

func TestWriteSSE(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSSEHeaders(rec)
	if err := WriteSSE(rec, Event{EventID: "7", Event: "state", Data: map[string]string{"phase": "idle"}}); err != nil {
		t.Fatalf("WriteSSE() error = %v", err)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "id: 7\nevent: state\ndata: {") || !strings.HasSuffix(body, "}\n\n") {
		t.Fatalf("unexpected frame: %q", body)
	}
	if !strings.Contains(body, `"phase":"idle"`) {
		t.Fatalf("missing data in frame: %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}
}

func TestWriteRetry(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteRetry(rec, 3*time.Second); err != nil {
		t.Fatalf("WriteRetry() error = %v", err)
	}
	if got := rec.Body.String(); got != "retry: 3000\n\n" {
		t.Fatalf("frame = %q", got)
	}
	rec = httptest.NewRecorder()
	_ = WriteRetry(rec, 0)
	if rec.Body.Len() != 0 {
		t.Fatalf("zero delay wrote %q", rec.Body.String())
	}
}
