package formdata

import "io"

const crlf = "\r\n"

// writeBoundary writes CRLF--boundary.
func writeBoundary(w io.StringWriter, boundary string) error {
	for _, s := range [...]string{crlf, "--", boundary} {
		if _, err := w.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}

// writeFinalBoundary writes CRLF--boundary--, with no trailing CRLF.
func writeFinalBoundary(w io.StringWriter, boundary string) error {
	if err := writeBoundary(w, boundary); err != nil {
		return err
	}
	_, err := w.WriteString("--")
	return err
}

// writeHeaders ends the boundary line and writes the header block, including
// the blank line that separates it from the content.
func writeHeaders(w io.StringWriter, p *Part) error {
	for _, s := range [...]string{
		crlf,
		"Content-Type: ", p.contentType, crlf,
		"Content-Disposition: ", p.contentDisposition, crlf,
		crlf,
	} {
		if _, err := w.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}

// chunkBuffer is the encoder's scratch buffer. Writes append, so framing
// longer than the buffer size grows it instead of failing.
type chunkBuffer struct {
	b []byte
}

func (c *chunkBuffer) WriteString(s string) (int, error) {
	c.b = append(c.b, s...)
	return len(s), nil
}

func (c *chunkBuffer) Len() int { return len(c.b) }

func (c *chunkBuffer) Bytes() []byte { return c.b }

func (c *chunkBuffer) Reset() { c.b = c.b[:0] }

// tail returns the writable region between the current length and limit.
// The caller commits what it filled with Extend.
func (c *chunkBuffer) tail(limit int) []byte {
	if cap(c.b) < limit {
		grown := make([]byte, len(c.b), limit)
		copy(grown, c.b)
		c.b = grown
	}
	return c.b[len(c.b):limit]
}

func (c *chunkBuffer) Extend(n int) { c.b = c.b[:len(c.b)+n] }

// countWriter measures framing without producing it.
type countWriter struct {
	n int64
}

func (c *countWriter) WriteString(s string) (int, error) {
	c.n += int64(len(s))
	return len(s), nil
}
