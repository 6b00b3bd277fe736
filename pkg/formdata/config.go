package formdata

// DefaultBufferSize is the scratch buffer size, and so the largest content
// chunk, used by an Encoder unless configured otherwise.
const DefaultBufferSize = 2048

// Config holds encoder settings loadable from the environment with
// config.Load.
type Config struct {
	// BufferSize bounds the bytes read from part content per pull.
	BufferSize int `env:"FORMDATA_BUFFER_SIZE" envDefault:"2048"`
	// Boundary selects the boundary generator: "random" or "uuid".
	Boundary string `env:"FORMDATA_BOUNDARY" envDefault:"random"`
}
