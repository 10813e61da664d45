package fhe

import "errors"

var (
	ErrCryptoInitFailed   = errors.New("crypto_init_failed")
	ErrEncryptionFailed   = errors.New("encryption_failed")
	ErrAlreadyInitialized = errors.New("already_initialized")
	ErrNoPublicKey        = errors.New("no_public_key")
)
