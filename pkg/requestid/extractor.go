package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formdata/pkg/logger"
)

// LoggerExtractor adds a request_id attribute to records logged with a
// context that carries one.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
