package fhe

import "context"

// Network is the chain handle a session is bound to.
type Network interface {
	ChainID(ctx context.Context) (uint64, error)
}

// Engine is the encryption library boundary. Load fetches whatever key
// material the engine needs; NewSession binds it to a chain and an
// environment tag.
type Engine interface {
	Load(ctx context.Context) error
	NewSession(ctx context.Context, chainID uint64, environmentID string) (Session, error)
}

type Session interface {
	Encrypt32(v uint32) ([]byte, error)
}
