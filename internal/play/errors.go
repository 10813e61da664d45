package play

import (
	"errors"

	"fhe-dice/internal/backend"
	"fhe-dice/internal/wallet"
)

var (
	ErrRollInFlight    = errors.New("roll_in_flight")
	ErrConnectInFlight = errors.New("connect_in_flight")
	ErrClosed          = errors.New("orchestrator_closed")
)

type ErrorKind string

const (
	KindWalletUnavailable  ErrorKind = "wallet_unavailable"
	KindUserRejected       ErrorKind = "user_rejected"
	KindWalletError        ErrorKind = "wallet_error"
	KindCryptoInitFailed   ErrorKind = "crypto_init_failed"
	KindEncryptionFailed   ErrorKind = "encryption_failed"
	KindBackendUnreachable ErrorKind = "backend_unreachable"
	KindBackendRejected    ErrorKind = "backend_rejected"
)

const (
	MsgPlayFailed         = "Failed to play game. Please try again."
	MsgBackendUnreachable = "Could not reach the game server. Please try again."
	MsgWalletUnavailable  = "No wallet available. Install or configure a wallet to connect."
	MsgUserRejected       = "Wallet connection was rejected."
	MsgWalletError        = "Failed to connect wallet. Please try again."
	MsgCryptoInitFailed   = "Encryption is unavailable. Games will be played in standard mode."
	MsgStatsFailed        = "Could not load game statistics."
	MsgHistoryFailed      = "Could not load recent games."
)

// Failure is what a failed roll or connection shows the user.
type Failure struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// playFailure maps a submission error to the user-facing failure. A server
// detail is shown verbatim; everything else gets a generic message.
func playFailure(err error) Failure {
	if rejected, ok := backend.AsRejected(err); ok {
		if rejected.Detail != "" {
			return Failure{Kind: KindBackendRejected, Message: rejected.Detail}
		}
		return Failure{Kind: KindBackendRejected, Message: MsgPlayFailed}
	}
	switch {
	case errors.Is(err, backend.ErrMalformedResponse), errors.Is(err, backend.ErrInvalidPlayRequest):
		return Failure{Kind: KindBackendRejected, Message: MsgPlayFailed}
	default:
		return Failure{Kind: KindBackendUnreachable, Message: MsgBackendUnreachable}
	}
}

func walletFailure(err error) Failure {
	switch {
	case errors.Is(err, wallet.ErrWalletUnavailable):
		return Failure{Kind: KindWalletUnavailable, Message: MsgWalletUnavailable}
	case errors.Is(err, wallet.ErrUserRejected):
		return Failure{Kind: KindUserRejected, Message: MsgUserRejected}
	default:
		return Failure{Kind: KindWalletError, Message: MsgWalletError}
	}
}
