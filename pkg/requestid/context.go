package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey struct{}

// WithContext stores id in ctx.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request ID stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// New returns a fresh random request ID.
func New() string {
	return uuid.NewString()
}

// Propagate copies the request ID from req's context into its X-Request-ID
// header. A header that is already set is left alone.
func Propagate(req *http.Request) {
	if req.Header.Get(Header) != "" {
		return
	}
	if id := FromContext(req.Context()); id != "" {
		req.Header.Set(Header, id)
	}
}
