// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"errors"
	"fmt"
)

// FailureMessage is the only failure text shown to users. Details are
// logged, never displayed.
const FailureMessage = "Failed to analyze research. Please try again."

// ErrTransport matches every *TransportError.
var ErrTransport = errors.New("analysis request failed")

// TransportError describes why an analysis call did not produce a usable
// response: a network error, a non-2xx status, or an invalid body.
type TransportError struct {
	// RequestID is the X-Request-ID sent with the call.
	RequestID string

	// StatusCode is the HTTP status, or 0 if no response arrived.
	StatusCode int

	// Body is a short excerpt of the response body for diagnostics.
	Body string

	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("analysis request %s: HTTP %d: %v", e.RequestID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("analysis request %s: %v", e.RequestID, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is reports ErrTransport as a match.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
