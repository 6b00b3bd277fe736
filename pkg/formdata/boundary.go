package formdata

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// DefaultBoundaryLength is the length of boundaries produced by RandomBoundary.
const DefaultBoundaryLength = 6

const boundaryAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// BoundaryGenerator produces a boundary token. Each call returns one boundary.
// A Form calls its generator exactly once, when it is created.
type BoundaryGenerator func() string

// RandomBoundary returns DefaultBoundaryLength characters drawn independently
// and uniformly from the ASCII alphanumeric alphabet.
func RandomBoundary() string {
	var b [DefaultBoundaryLength]byte
	for i := range b {
		b[i] = boundaryAlphabet[rand.IntN(len(boundaryAlphabet))]
	}
	return string(b[:])
}

// UUIDBoundary returns the 32 hex digits of a random UUID.
// Use it when part content is large or untrusted and a six character
// boundary is too likely to collide with it.
func UUIDBoundary() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// StaticBoundary returns a generator that always yields s.
// Intended for tests that compare encoded bytes.
func StaticBoundary(s string) BoundaryGenerator {
	return func() string { return s }
}

func generatorByName(name string) (BoundaryGenerator, bool) {
	switch strings.ToLower(name) {
	case "", "random":
		return RandomBoundary, true
	case "uuid":
		return UUIDBoundary, true
	default:
		return nil, false
	}
}
