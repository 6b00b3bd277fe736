package upload

import (
	"errors"
	"fmt"
)

// Upload errors. Transport failures wrap the underlying error so callers can
// still match context.Canceled, net errors and the like.
var (
	ErrInvalidURL       = errors.New("upload: invalid URL")
	ErrNilForm          = errors.New("upload: nil form")
	ErrInvalidRequest   = errors.New("upload: failed to build request")
	ErrRequestFailed    = errors.New("upload: request failed")
	ErrTimeout          = errors.New("upload: request timeout")
	ErrUnexpectedStatus = errors.New("upload: unexpected response status")
)

// StatusError is returned by Send when the server answers with a non-2xx
// status. Body holds the start of the response body with newlines flattened.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upload: server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upload: server returned status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool { return target == ErrUnexpectedStatus }
