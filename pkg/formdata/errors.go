package formdata

import (
	"errors"
	"fmt"
)

// Construction errors, returned synchronously by builder and attach calls.
var (
	ErrFileOpen      = errors.New("formdata: failed to open file")
	ErrInvalidInput  = errors.New("formdata: invalid input")
	ErrFormConsumed  = errors.New("formdata: form already converted into an encoder")
	ErrNilRequest    = errors.New("formdata: nil request")
	ErrInvalidHeader = errors.New("formdata: invalid content type header")
)

// Streaming errors, surfaced by Encoder pulls. They are always wrapped in a
// *StreamError carrying the underlying failure.
var (
	ErrBoundaryWrite = errors.New("formdata: boundary write failed")
	ErrHeaderWrite   = errors.New("formdata: header write failed")
	ErrContentRead   = errors.New("formdata: content read failed")
	ErrEncoderClosed = errors.New("formdata: encoder closed before completion")
)

// StreamError reports a failure that terminated an Encoder.
// errors.Is matches both Kind and the wrapped cause.
type StreamError struct {
	Kind  error  // One of ErrBoundaryWrite, ErrHeaderWrite, ErrContentRead
	Field string // Name of the part being encoded, empty for the terminal boundary
	Err   error  // Underlying I/O failure
}

func (e *StreamError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: field %q: %v", e.Kind, e.Field, e.Err)
}

func (e *StreamError) Is(target error) bool { return target == e.Kind }

func (e *StreamError) Unwrap() error { return e.Err }
