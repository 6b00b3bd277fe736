package echo

import "time"

// Config holds server settings, loadable with config.Load.
type Config struct {
	Addr            string        `env:"ECHO_ADDR" envDefault:"127.0.0.1:9001"`
	ReadTimeout     time.Duration `env:"ECHO_READ_TIMEOUT" envDefault:"5m"`
	WriteTimeout    time.Duration `env:"ECHO_WRITE_TIMEOUT" envDefault:"5m"`
	IdleTimeout     time.Duration `env:"ECHO_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"ECHO_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// NewFromConfig creates a Server from cfg. Zero values keep the defaults and
// opts are applied last.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	base := make([]Option, 0, 5)
	if cfg.Addr != "" {
		base = append(base, WithAddr(cfg.Addr))
	}
	if cfg.ReadTimeout > 0 {
		base = append(base, WithReadTimeout(cfg.ReadTimeout))
	}
	if cfg.WriteTimeout > 0 {
		base = append(base, WithWriteTimeout(cfg.WriteTimeout))
	}
	if cfg.IdleTimeout > 0 {
		base = append(base, WithIdleTimeout(cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout > 0 {
		base = append(base, WithShutdownTimeout(cfg.ShutdownTimeout))
	}
	return New(append(base, opts...)...)
}
