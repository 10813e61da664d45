package fhe

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"fhe-dice/internal/backend"
	"fhe-dice/internal/config"

	"golang.org/x/crypto/nacl/box"
)

const keyFetchTimeout = 10 * time.Second

// SealedBoxEngine seals values to the network public key with anonymous
// NaCl boxes. The key is taken from configuration or fetched from the
// relayer's key endpoint.
type SealedBoxEngine struct {
	publicKeyHex string
	relayerURL   string
	http         *backend.HTTPClient
	rand         io.Reader

	mu  sync.Mutex
	key *[32]byte
}

func NewSealedBoxEngine(publicKeyHex, relayerURL string, hc *backend.HTTPClient) *SealedBoxEngine {
	if hc == nil {
		hc = backend.NewHTTPClient()
	}
	return &SealedBoxEngine{
		publicKeyHex: strings.TrimSpace(publicKeyHex),
		relayerURL:   strings.TrimRight(strings.TrimSpace(relayerURL), "/"),
		http:         hc,
		rand:         rand.Reader,
	}
}

func NewEngineFromConfig(cfg config.ClientConfig) *SealedBoxEngine {
	return NewSealedBoxEngine(cfg.FHEPublicKey, cfg.FHERelayerURL, nil)
}

type keyResponse struct {
	PublicKey string `json:"public_key"`
}

func (e *SealedBoxEngine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.key != nil {
		return nil
	}
	raw := e.publicKeyHex
	if raw == "" {
		if e.relayerURL == "" {
			return ErrNoPublicKey
		}
		ctx, cancel := context.WithTimeout(ctx, keyFetchTimeout)
		defer cancel()
		var resp keyResponse
		if err := e.http.GetJSON(ctx, e.relayerURL+"/v1/keyurl", &resp); err != nil {
			return fmt.Errorf("fetch public key: %w", err)
		}
		raw = resp.PublicKey
	}
	key, err := parsePublicKey(raw)
	if err != nil {
		return err
	}
	e.key = key
	return nil
}

func (e *SealedBoxEngine) NewSession(_ context.Context, chainID uint64, environmentID string) (Session, error) {
	e.mu.Lock()
	key := e.key
	e.mu.Unlock()
	if key == nil {
		return nil, ErrNoPublicKey
	}
	return &sealedSession{key: key, chainID: chainID, tag: []byte(environmentID), rand: e.rand}, nil
}

type sealedSession struct {
	key     *[32]byte
	chainID uint64
	tag     []byte
	rand    io.Reader
}

// Encrypt32 seals [value(4) | chain id(8) | environment tag].
func (s *sealedSession) Encrypt32(v uint32) ([]byte, error) {
	msg := make([]byte, 12, 12+len(s.tag))
	binary.BigEndian.PutUint32(msg[0:4], v)
	binary.BigEndian.PutUint64(msg[4:12], s.chainID)
	msg = append(msg, s.tag...)
	return box.SealAnonymous(nil, msg, s.key, s.rand)
}

func parsePublicKey(raw string) (*[32]byte, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("public key is %d bytes, want 32", len(b))
	}
	var key [32]byte
	copy(key[:], b)
	return &key, nil
}
