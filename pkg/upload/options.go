package upload

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for uploads.
// Useful for custom transports, proxies and tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHeader adds a header sent with every upload.
// Content-Type and Content-Length are owned by the form and cannot be set.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if key == "" || value == "" {
			return
		}
		switch http.CanonicalHeaderKey(key) {
		case "Content-Type", "Content-Length":
			return
		}
		c.headers.Add(key, value)
	}
}

// WithTimeout bounds a single Send, including reading the response.
// Default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithConcurrency limits how many uploads SendAll runs at once. Default is 4.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}
