package play

import (
	"errors"
	"net/http"

	"fhe-dice/internal/backend"
	"fhe-dice/internal/wallet"
)

// MapError turns an orchestrator, wallet or backend error into an HTTP
// status and a stable error code for the control surfaces.
func MapError(err error) (int, string) {
	if rejected, ok := backend.AsRejected(err); ok {
		if rejected.Status == http.StatusNotFound {
			return http.StatusNotFound, "not_found"
		}
		return http.StatusBadGateway, string(KindBackendRejected)
	}
	switch {
	case errors.Is(err, ErrRollInFlight):
		return http.StatusConflict, "roll_in_flight"
	case errors.Is(err, ErrConnectInFlight):
		return http.StatusConflict, "connect_in_flight"
	case errors.Is(err, ErrClosed):
		return http.StatusServiceUnavailable, "orchestrator_closed"
	case errors.Is(err, wallet.ErrWalletUnavailable):
		return http.StatusServiceUnavailable, string(KindWalletUnavailable)
	case errors.Is(err, wallet.ErrUserRejected):
		return http.StatusForbidden, string(KindUserRejected)
	case errors.Is(err, wallet.ErrWalletError):
		return http.StatusBadGateway, string(KindWalletError)
	case errors.Is(err, backend.ErrInvalidRequest), errors.Is(err, backend.ErrInvalidPlayRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, backend.ErrBackendUnreachable):
		return http.StatusBadGateway, string(KindBackendUnreachable)
	case errors.Is(err, backend.ErrMalformedResponse):
		return http.StatusBadGateway, "malformed_response"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
