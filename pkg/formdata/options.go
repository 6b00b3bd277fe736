package formdata

import (
	"log/slog"

	"github.com/dmitrymomot/formdata/pkg/file"
)

// Option configures a Form.
type Option func(*Form)

// WithBoundaryGenerator replaces the boundary policy. Nil is ignored.
func WithBoundaryGenerator(g BoundaryGenerator) Option {
	return func(f *Form) {
		if g != nil {
			f.generator = g
		}
	}
}

// WithBoundary fixes the boundary to s.
func WithBoundary(s string) Option {
	return WithBoundaryGenerator(StaticBoundary(s))
}

// WithSource sets the source used by AddFile and friends. Nil is ignored.
// The default opens local paths as given.
func WithSource(src file.Source) Option {
	return func(f *Form) {
		if src != nil {
			f.source = src
		}
	}
}

// WithMIMELookup replaces the extension to content type lookup. Nil is ignored.
func WithMIMELookup(lookup func(ext string) (string, bool)) Option {
	return func(f *Form) {
		if lookup != nil {
			f.lookup = lookup
		}
	}
}

// WithLogger sets the logger for the form and its encoder. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithBufferSize sets the encoder scratch buffer size.
// Panics for non-positive sizes so misconfiguration fails at startup.
func WithBufferSize(n int) Option {
	if n <= 0 {
		panic("WithBufferSize: size must be > 0")
	}
	return func(f *Form) { f.bufferSize = n }
}

// WithConfig applies a Config. Zero or unknown values keep the defaults.
func WithConfig(cfg Config) Option {
	return func(f *Form) {
		if cfg.BufferSize > 0 {
			f.bufferSize = cfg.BufferSize
		}
		if cfg.Boundary == "" {
			return
		}
		if g, ok := generatorByName(cfg.Boundary); ok {
			f.generator = g
		}
	}
}
