package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache stores parsed configuration values keyed by type and prefix.
type configCache struct {
	mu     sync.Mutex
	values map[string]any
}

var (
	globalCache = &configCache{values: make(map[string]any)}

	defaultEnvLoaded sync.Once
)

// Option tunes a single Load call.
type Option func(*env.Options)

// WithPrefix prepends prefix to every env tag of the target struct,
// e.g. WithPrefix("UPLOAD_") makes `env:"TIMEOUT"` read UPLOAD_TIMEOUT.
func WithPrefix(prefix string) Option {
	return func(o *env.Options) { o.Prefix = prefix }
}

// WithEnvironment parses from the given map instead of the process environment.
// Values loaded this way are never cached.
func WithEnvironment(vars map[string]string) Option {
	return func(o *env.Options) { o.Environment = vars }
}

// LoadEnv reads one or more .env files into the process environment without
// overriding variables that are already set. Without arguments it loads the
// .env file from the working directory and ignores its absence.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("%w: %w", ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(files ...string) {
	if err := LoadEnv(files...); err != nil {
		panic(err)
	}
}

// Load parses environment variables into v using `env` and `envDefault`
// struct tags. The default .env file is loaded once per process before the
// first parse. Successful results are cached per type and prefix, so later
// calls return the first parsed value even if the environment changed; use
// ResetCache to start over.
//
// Example:
//
//	type UploadConfig struct {
//		Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg UploadConfig
//	if err := config.Load(&cfg, config.WithPrefix("UPLOAD_")); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvLoaded.Do(func() { _ = LoadEnv() })

	var options env.Options
	for _, opt := range opts {
		opt(&options)
	}

	cacheable := options.Environment == nil
	key := cacheKey[T](options.Prefix)

	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()

	if cacheable {
		if cached, ok := globalCache.values[key]; ok {
			*v = cached.(T)
			return nil
		}
	}

	var parsed T
	if err := env.ParseWithOptions(&parsed, options); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	if cacheable {
		globalCache.values[key] = parsed
	}
	*v = parsed
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ResetCache drops every cached configuration value.
func ResetCache() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.mu.Unlock()
}

func cacheKey[T any](prefix string) string {
	return reflect.TypeFor[T]().String() + "|" + prefix
}
