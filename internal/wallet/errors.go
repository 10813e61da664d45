package wallet

import "errors"

var (
	ErrWalletUnavailable = errors.New("wallet_unavailable")
	ErrUserRejected      = errors.New("user_rejected")
	ErrWalletError       = errors.New("wallet_error")
)

// EIP-1193 / EIP-3085 provider error codes.
const (
	codeUserRejected      = 4001
	codeUnrecognizedChain = 4902
)
