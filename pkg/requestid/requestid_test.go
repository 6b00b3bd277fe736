package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formdata/pkg/logger"
	"github.com/dmitrymomot/formdata/pkg/requestid"
)

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))

	ctx := requestid.WithContext(context.Background(), "abc")
	assert.Equal(t, "abc", requestid.FromContext(ctx))

	assert.NotEqual(t, requestid.New(), requestid.New())
}

func TestPropagate(t *testing.T) {
	t.Parallel()

	t.Run("from context", func(t *testing.T) {
		t.Parallel()
		ctx := requestid.WithContext(context.Background(), "upload-1")
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://example.com", nil)
		require.NoError(t, err)

		requestid.Propagate(req)
		assert.Equal(t, "upload-1", req.Header.Get(requestid.Header))
	})

	t.Run("explicit header wins", func(t *testing.T) {
		t.Parallel()
		ctx := requestid.WithContext(context.Background(), "from-ctx")
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://example.com", nil)
		require.NoError(t, err)
		req.Header.Set(requestid.Header, "explicit")

		requestid.Propagate(req)
		assert.Equal(t, "explicit", req.Header.Get(requestid.Header))
	})

	t.Run("no id", func(t *testing.T) {
		t.Parallel()
		req, err := http.NewRequest(http.MethodPost, "http://example.com", nil)
		require.NoError(t, err)

		requestid.Propagate(req)
		assert.Empty(t, req.Header.Get(requestid.Header))
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{"valid id is reused", "test-request-id_123", true},
		{"missing id", "", false},
		{"invalid characters", "test@request#id", false},
		{"spaces", "test request id", false},
		{"too long", strings.Repeat("a", 129), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = requestid.FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(requestid.Header, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(requestid.Header))
			if tt.reuse {
				assert.Equal(t, tt.incoming, seen)
			} else {
				assert.NotEqual(t, tt.incoming, seen)
			}
		})
	}
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithJSONFormatter(),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	log.InfoContext(requestid.WithContext(context.Background(), "rid-42"), "hello")
	log.InfoContext(context.Background(), "anonymous")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"request_id":"rid-42"`)
	assert.NotContains(t, lines[1], "request_id")
}
