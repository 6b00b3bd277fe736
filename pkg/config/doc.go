// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv for `.env` files and
// github.com/caarlos0/env/v11 for struct parsing:
//
//   - LoadEnv reads one or more `.env` files (the default `.env` is loaded
//     automatically before the first Load).
//   - Load parses the environment into any struct using `env` tags, optionally
//     with a variable prefix, and caches the result per type and prefix.
//   - MustLoad and MustLoadEnv panic on failure for configuration that is
//     required at startup.
//   - ResetCache clears the cache, which is handy in tests.
//
// # Usage
//
//	var cfg formdata.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//	form := formdata.New(formdata.WithConfig(cfg))
//
// # Error Handling
//
// Failures can be compared with errors.Is against ErrParsingConfig,
// ErrLoadingEnvFile and ErrNilPointer.
package config
