package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type fakeGameServer struct {
	*httptest.Server

	mu           sync.Mutex
	historyLimit string
}

func (s *fakeGameServer) HistoryLimit() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyLimit
}

func newFakeGameServer(t *testing.T) *fakeGameServer {
	t.Helper()
	fake := &fakeGameServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"total_games":12,"total_nfts":3,"total_users":4}`))
	})
	mux.HandleFunc("/api/games", func(w http.ResponseWriter, r *http.Request) {
		fake.mu.Lock()
		fake.historyLimit = r.URL.Query().Get("limit")
		fake.mu.Unlock()
		_, _ = w.Write([]byte(`{"games":[{"id":"g1","player_address":null,"dice_results":[6,6],"total_score":12,"nft_generated":true,"timestamp":"2026-01-02T03:04:05"}]}`))
	})
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"healthy","service":"dice-backend"}`))
	})
	mux.HandleFunc("/api/game/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Game not found"}`))
	})
	mux.HandleFunc("/api/play", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"dice_results":[2,3],"total_score":5,"nft_generated":false}`))
	})
	fake.Server = httptest.NewServer(mux)
	t.Cleanup(fake.Close)
	return fake
}

func runCLI(t *testing.T, backendURL string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BACKEND_URL", backendURL)
	t.Setenv("WALLET_RPC_URL", "")
	t.Setenv("ROLL_PACING", "0s")
	t.Setenv("HISTORY_LIMIT", "5")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", "testdata-missing.env"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStatsJSON(t *testing.T) {
	srv := newFakeGameServer(t)
	out, err := runCLI(t, srv.URL, "--json", "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var got struct {
		TotalGames int `json:"total_games"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.TotalGames != 12 {
		t.Fatalf("total_games = %d, want 12", got.TotalGames)
	}
}

func TestHistoryText(t *testing.T) {
	srv := newFakeGameServer(t)
	out, err := runCLI(t, srv.URL, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "Anonymous") || !strings.Contains(out, "⚅") {
		t.Fatalf("history output = %q", out)
	}
	if got := srv.HistoryLimit(); got != "5" {
		t.Fatalf("history limit = %q, want 5", got)
	}
}

func TestHistoryLimitFlag(t *testing.T) {
	srv := newFakeGameServer(t)
	if _, err := runCLI(t, srv.URL, "history", "--limit", "2"); err != nil {
		t.Fatalf("history: %v", err)
	}
	if got := srv.HistoryLimit(); got != "2" {
		t.Fatalf("history limit = %q, want 2", got)
	}
}

func TestHealth(t *testing.T) {
	srv := newFakeGameServer(t)
	out, err := runCLI(t, srv.URL, "health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !strings.Contains(out, "dice-backend: healthy") {
		t.Fatalf("health output = %q", out)
	}
}

func TestGameNotFound(t *testing.T) {
	srv := newFakeGameServer(t)
	if _, err := runCLI(t, srv.URL, "game", "missing"); err == nil {
		t.Fatal("expected error for missing game")
	}
}

func TestRollStandard(t *testing.T) {
	srv := newFakeGameServer(t)
	out, err := runCLI(t, srv.URL, "--json", "roll")
	if err != nil {
		t.Fatalf("roll: %v (%s)", err, out)
	}
	var got struct {
		Phase string `json:"phase"`
		Mode  string `json:"mode"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Phase != "resolved" || got.Mode != "standard" {
		t.Fatalf("roll = %+v, want resolved standard", got)
	}
}

func TestRollUnreachableFails(t *testing.T) {
	srv := newFakeGameServer(t)
	url := srv.URL
	srv.Close()
	_, err := runCLI(t, url, "roll")
	if !errors.Is(err, errRollFailed) {
		t.Fatalf("err = %v, want errRollFailed", err)
	}
}
