package play

import (
	"context"
	"sync"
	"testing"
	"time"

	"fhe-dice/internal/backend"
	"fhe-dice/internal/fhe"
)

const testPlayer = "0x742d35cc6634c0532925a3b844bc454e4438f44e"

type fakeIdentity struct {
	mu          sync.Mutex
	available   bool
	authorized  string
	account     string
	authErr     error
	ensureErr   error
	authGate    chan struct{}
	authCalls   int
	ensureCalls int
}

func (f *fakeIdentity) Available() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.available
}

func (f *fakeIdentity) AuthorizedAccount(context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authorized
}

func (f *fakeIdentity) RequestAuthorization(context.Context) (string, error) {
	f.mu.Lock()
	f.authCalls++
	gate := f.authGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authErr != nil {
		return "", f.authErr
	}
	return f.account, nil
}

func (f *fakeIdentity) EnsureChain(context.Context, uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureCalls++
	return f.ensureErr
}

func (f *fakeIdentity) ChainID(context.Context) (uint64, error) {
	return 11155111, nil
}

type fakeCrypto struct {
	mu        sync.Mutex
	ready     bool
	initErr   error
	encErr    error
	initCalls int
	encInputs []uint32
}

func (f *fakeCrypto) Initialize(ctx context.Context, network fhe.Network, env string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCalls++
	if f.ready {
		return fhe.ErrAlreadyInitialized
	}
	if f.initErr != nil {
		return f.initErr
	}
	if _, err := network.ChainID(ctx); err != nil {
		return err
	}
	f.ready = true
	return nil
}

func (f *fakeCrypto) EncryptInteger(_ context.Context, v uint32) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.encInputs = append(f.encInputs, v)
	if f.encErr != nil {
		return nil, f.encErr
	}
	return []byte{0xca, 0xfe, byte(v)}, nil
}

func (f *fakeCrypto) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready
}

func (f *fakeCrypto) InitCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initCalls
}

func (f *fakeCrypto) EncInputs() []uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint32(nil), f.encInputs...)
}

type fakeBackend struct {
	mu           sync.Mutex
	result       *backend.GameResult
	playErr      error
	playGate     chan struct{}
	playCtxErr   error
	requests     []backend.PlayRequest
	stats        *backend.Stats
	statsErr     error
	history      []backend.HistoryEntry
	historyErr   error
	statsCalls   int
	historyLimit int
}

func (f *fakeBackend) Play(ctx context.Context, req backend.PlayRequest) (*backend.GameResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	gate := f.playGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playCtxErr = ctx.Err()
	if f.playErr != nil {
		return nil, f.playErr
	}
	r := *f.result
	return &r, nil
}

func (f *fakeBackend) Stats(context.Context) (*backend.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsCalls++
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	if f.stats == nil {
		return &backend.Stats{}, nil
	}
	s := *f.stats
	return &s, nil
}

func (f *fakeBackend) History(_ context.Context, limit int) ([]backend.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyLimit = limit
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return append([]backend.HistoryEntry{}, f.history...), nil
}

func (f *fakeBackend) Requests() []backend.PlayRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]backend.PlayRequest(nil), f.requests...)
}

func (f *fakeBackend) StatsCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statsCalls
}

func (f *fakeBackend) set(fn func(f *fakeBackend)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func okResult() *backend.GameResult {
	return &backend.GameResult{DiceResults: []int{3, 5}, TotalScore: 8}
}

func newTestOrchestrator(t *testing.T, id *fakeIdentity, crypto *fakeCrypto, be *fakeBackend) *Orchestrator {
	t.Helper()
	if be.result == nil {
		be.result = okResult()
	}
	o := New(id, crypto, be, Options{
		EnvironmentID: "env-test",
		TargetChainID: 11155111,
		RollDie:       func() int { return 4 },
	})
	t.Cleanup(o.Close)
	return o
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
