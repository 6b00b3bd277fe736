package formdata_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formdata/pkg/formdata"
)

// drain pulls every chunk from enc and returns copies of them.
func drain(t *testing.T, enc *formdata.Encoder) [][]byte {
	t.Helper()
	var chunks [][]byte
	for {
		chunk, err := enc.Next()
		if errors.Is(err, io.EOF) {
			return chunks
		}
		require.NoError(t, err)
		require.NotEmpty(t, chunk, "encoder must never emit empty chunks")
		chunks = append(chunks, append([]byte(nil), chunk...))
	}
}

func concat(chunks [][]byte) string {
	var out []byte
	for _, c := range chunks {
		out = append(out, c...)
	}
	return string(out)
}

func encode(t *testing.T, form *formdata.Form) string {
	t.Helper()
	enc, err := form.Encoder()
	require.NoError(t, err)
	return concat(drain(t, enc))
}

// framing returns the exact bytes written before a part's content.
func framing(boundary, contentType, disposition string) string {
	return "\r\n--" + boundary + "\r\n" +
		"Content-Type: " + contentType + "\r\n" +
		"Content-Disposition: " + disposition + "\r\n" +
		"\r\n"
}

func terminal(boundary string) string {
	return "\r\n--" + boundary + "--"
}

// trackingReader records whether it was closed.
type trackingReader struct {
	io.Reader
	closed int
}

func (r *trackingReader) Close() error {
	r.closed++
	return nil
}

// failingReader yields data, then fails with err.
type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

// stuckReader never makes progress.
type stuckReader struct{}

func (stuckReader) Read([]byte) (int, error) { return 0, nil }
