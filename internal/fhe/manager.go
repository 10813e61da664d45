package fhe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultInitTimeout bounds the key fetch and chain lookup of one
// Initialize call.
const DefaultInitTimeout = 20 * time.Second

// Manager owns the lifecycle of one encryption session. Initialize does its
// network work outside mu, so Ready and EncryptInteger never wait on it.
type Manager struct {
	engine      Engine
	initTimeout time.Duration

	initMu sync.Mutex

	mu      sync.RWMutex
	session Session
}

func NewManager(engine Engine) *Manager {
	return &Manager{engine: engine, initTimeout: DefaultInitTimeout}
}

// SetInitTimeout replaces DefaultInitTimeout. Non-positive values are ignored.
func (m *Manager) SetInitTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	m.initMu.Lock()
	m.initTimeout = d
	m.initMu.Unlock()
}

func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session != nil
}

// Initialize loads the engine and creates a session bound to the network's
// chain and the environment tag. A failed attempt leaves the manager not
// ready; calling it again once ready returns ErrAlreadyInitialized.
// Concurrent calls are serialized.
func (m *Manager) Initialize(ctx context.Context, network Network, environmentID string) error {
	m.initMu.Lock()
	defer m.initMu.Unlock()
	if m.Ready() {
		return ErrAlreadyInitialized
	}
	if m.engine == nil || network == nil {
		return fmt.Errorf("%w: engine or network missing", ErrCryptoInitFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, m.initTimeout)
	defer cancel()
	if err := m.engine.Load(ctx); err != nil {
		return fmt.Errorf("%w: load: %v", ErrCryptoInitFailed, err)
	}
	chainID, err := network.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("%w: chain id: %v", ErrCryptoInitFailed, err)
	}
	session, err := m.engine.NewSession(ctx, chainID, environmentID)
	if err != nil {
		return fmt.Errorf("%w: session: %v", ErrCryptoInitFailed, err)
	}
	if session == nil {
		return fmt.Errorf("%w: engine returned no session", ErrCryptoInitFailed)
	}

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()
	log.Info().Uint64("chain_id", chainID).Str("environment_id", environmentID).Msg("encryption session ready")
	return nil
}

// EncryptInteger encrypts v as a 32-bit value.
func (m *Manager) EncryptInteger(ctx context.Context, v uint32) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	m.mu.RLock()
	session := m.session
	m.mu.RUnlock()
	if session == nil {
		return nil, fmt.Errorf("%w: session not ready", ErrEncryptionFailed)
	}
	out, err := session.Encrypt32(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty ciphertext", ErrEncryptionFailed)
	}
	return out, nil
}
