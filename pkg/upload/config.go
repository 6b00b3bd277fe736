package upload

import "time"

// Config holds client settings. Load it with config.Load and the "UPLOAD_"
// prefix, e.g. UPLOAD_TIMEOUT=1m.
type Config struct {
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"30s"`
	UserAgent   string        `env:"USER_AGENT" envDefault:"formdata-upload/1.0"`
	Concurrency int           `env:"CONCURRENCY" envDefault:"4"`
}

// EnvPrefix is the variable prefix used for Config.
const EnvPrefix = "UPLOAD_"
