package catalog

import (
	"context"
	"errors"
	"fmt"
)

// NetworkError wraps a transport-level failure talking to the catalog API.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("catalog network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError reports a non-2xx response from the catalog API.
type HTTPStatusError struct {
	Code int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("catalog request failed with status %d", e.Code)
}

// DecodeError reports a response body that could not be parsed into the
// expected envelope shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("catalog decode error: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// AllSourcesFailedError is reported when every parallel fetch in a batch
// failed. Individual source failures are absorbed and degrade to empty
// contributions; only this error surfaces to the presentation boundary.
type AllSourcesFailedError struct {
	Errors []error
}

func (e *AllSourcesFailedError) Error() string {
	if len(e.Errors) == 0 {
		return "all catalog sources failed"
	}
	return fmt.Sprintf("all %d catalog sources failed: %v", len(e.Errors), e.Errors[0])
}

func (e *AllSourcesFailedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0]
}

// isCancellation reports whether err is the cooperative cancellation
// signal rather than a real failure. Cancellation is control flow and must
// never reach presentation state as an error.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
