package formdata_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formdata/pkg/formdata"
)

func TestRandomBoundary(t *testing.T) {
	t.Parallel()

	alnum := regexp.MustCompile(`^[A-Za-z0-9]{6}$`)
	seen := make(map[string]struct{})
	for range 200 {
		b := formdata.RandomBoundary()
		assert.Regexp(t, alnum, b)
		seen[b] = struct{}{}
	}
	assert.Greater(t, len(seen), 1, "boundaries should vary between calls")
}

func TestUUIDBoundary(t *testing.T) {
	t.Parallel()

	b := formdata.UUIDBoundary()
	assert.Regexp(t, `^[0-9a-f]{32}$`, b)
	assert.NotEqual(t, b, formdata.UUIDBoundary())
}

func TestStaticBoundary(t *testing.T) {
	t.Parallel()

	gen := formdata.StaticBoundary("fixed")
	assert.Equal(t, "fixed", gen())
	assert.Equal(t, "fixed", gen())
}

func TestForm_BoundaryGeneratedOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	form := formdata.New(formdata.WithBoundaryGenerator(func() string {
		calls++
		return "counted"
	}))
	form.AddText("a", "1")
	form.AddText("b", "2")

	assert.Equal(t, "counted", form.Boundary())
	_ = encode(t, form)
	assert.Equal(t, 1, calls)
}

func TestForm_DefaultBoundary(t *testing.T) {
	t.Parallel()

	form := formdata.New()
	assert.Len(t, form.Boundary(), formdata.DefaultBoundaryLength)

	form = formdata.New(formdata.WithBoundaryGenerator(nil))
	assert.Len(t, form.Boundary(), formdata.DefaultBoundaryLength)
}

func TestForm_WithConfig(t *testing.T) {
	t.Parallel()

	form := formdata.New(formdata.WithConfig(formdata.Config{Boundary: "uuid", BufferSize: 64}))
	assert.Len(t, form.Boundary(), 32)

	enc, err := form.Encoder()
	assert.NoError(t, err)
	assert.Equal(t, 64, enc.BufferSize())

	// An empty selector keeps an explicitly configured boundary.
	form = formdata.New(formdata.WithBoundary("keep"), formdata.WithConfig(formdata.Config{}))
	assert.Equal(t, "keep", form.Boundary())

	// Unknown selectors are ignored.
	form = formdata.New(formdata.WithBoundary("keep"), formdata.WithConfig(formdata.Config{Boundary: "bogus"}))
	assert.Equal(t, "keep", form.Boundary())
}
