package backend

import (
	"errors"
	"fmt"
)

var (
	ErrBackendUnreachable = errors.New("backend_unreachable")
	ErrMalformedResponse  = errors.New("malformed_response")
	ErrInvalidPlayRequest = errors.New("invalid_play_request")
	ErrInvalidRequest     = errors.New("invalid_request")
)

// RejectedError is a non-2xx answer from the game server. Detail carries the
// server's "detail" string verbatim and is empty when none was supplied.
type RejectedError struct {
	Status int
	Detail string
}

func (e *RejectedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend rejected request with status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend rejected request with status %d", e.Status)
}

// AsRejected unwraps err into a *RejectedError when it is one.
func AsRejected(err error) (*RejectedError, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}
