package formdata

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dmitrymomot/formdata/pkg/logger"
)

// maxConsecutiveEmptyReads bounds (0, nil) reads before a source is
// considered stuck, mirroring bufio.
const maxConsecutiveEmptyReads = 100

type encoderState uint8

const (
	stateBoundary encoderState = iota // framing for parts[next] is due
	stateContent                      // draining active
	stateFinal                        // terminal boundary is due
	stateDone                         // nothing left to emit
)

// Encoder streams a Form as multipart/form-data.
//
// It is pull driven: every call to Next returns the next chunk of the body.
// Chunks are produced on demand from the parts' content sources, so the
// body is never held in memory as a whole. An Encoder must be used by a
// single consumer; it starts no goroutines of its own.
//
// Encoder also implements io.ReadCloser and io.WriterTo and can be used
// directly as an HTTP request body.
type Encoder struct {
	boundary string
	parts    []*Part
	next     int

	current *Part
	active  io.Reader

	state    encoderState
	size     int
	buf      chunkBuffer
	pending  []byte
	deferred error
	err      error
	closed   bool

	written int64
	logger  *slog.Logger
}

func newEncoder(boundary string, parts []*Part, size int, log *slog.Logger) *Encoder {
	e := &Encoder{
		boundary: boundary,
		parts:    parts,
		size:     size,
		buf:      chunkBuffer{b: make([]byte, 0, size)},
		logger:   log,
	}
	if len(parts) == 0 {
		e.state = stateFinal
	}
	return e
}

// Boundary returns the boundary used by the encoded body.
func (e *Encoder) Boundary() string { return e.boundary }

// BufferSize returns the scratch buffer size.
func (e *Encoder) BufferSize() int { return e.size }

// Next returns the next non-empty chunk of the body, io.EOF once the
// terminal boundary has been returned, or the error that terminated the
// stream. After an error every call returns that same error.
//
// The chunk aliases the encoder's scratch buffer and is only valid until the
// next call to Next, Read or WriteTo.
func (e *Encoder) Next() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.deferred != nil {
		err := e.deferred
		e.deferred = nil
		return nil, e.fail(ErrContentRead, e.current, err)
	}

	e.buf.Reset()
	for {
		switch e.state {
		case stateBoundary:
			if e.buf.Len() >= e.size {
				// Framing of earlier empty parts already filled the buffer.
				return e.emit(), nil
			}
			p := e.parts[e.next]
			e.parts[e.next] = nil
			e.next++

			if err := writeBoundary(&e.buf, e.boundary); err != nil {
				return nil, e.fail(ErrBoundaryWrite, p, err)
			}
			if err := writeHeaders(&e.buf, p); err != nil {
				return nil, e.fail(ErrHeaderWrite, p, err)
			}
			e.current = p
			e.active = p.open()
			e.state = stateContent
			e.logger.Debug("part framed", logger.Field(p.name), logger.Filename(p.filename))

		case stateContent:
			if e.buf.Len() >= e.size {
				return e.emit(), nil
			}
			n, err := e.read(e.buf.tail(e.size))
			e.buf.Extend(n)

			switch {
			case err == io.EOF:
				e.finishPart()
			case err != nil && n > 0:
				// Hand out what was read; the failure surfaces on the next pull.
				e.deferred = err
			case err != nil:
				return nil, e.fail(ErrContentRead, e.current, err)
			}
			if n > 0 {
				return e.emit(), nil
			}

		case stateFinal:
			if err := writeFinalBoundary(&e.buf, e.boundary); err != nil {
				return nil, e.fail(ErrBoundaryWrite, nil, err)
			}
			e.state = stateDone
			chunk := e.emit()
			e.logger.Debug("stream finished", logger.Boundary(e.boundary), logger.Bytes(e.written))
			return chunk, nil

		default:
			return nil, io.EOF
		}
	}
}

// read fills p from the active source, retrying empty reads.
func (e *Encoder) read(p []byte) (int, error) {
	for range maxConsecutiveEmptyReads {
		n, err := e.active.Read(p)
		if n > 0 || err != nil {
			return n, err
		}
	}
	return 0, io.ErrNoProgress
}

// finishPart releases the exhausted source and picks the next state.
func (e *Encoder) finishPart() {
	if err := closeSource(e.active); err != nil {
		e.logger.Warn("failed to release part content", logger.Field(e.current.name), logger.Error(err))
	}
	e.logger.Debug("part exhausted", logger.Field(e.current.name))
	e.active = nil
	e.current = nil

	if e.next < len(e.parts) {
		e.state = stateBoundary
	} else {
		e.state = stateFinal
	}
}

func (e *Encoder) emit() []byte {
	e.written += int64(e.buf.Len())
	return e.buf.Bytes()
}

// fail makes the encoder terminal and releases every source it still holds.
func (e *Encoder) fail(kind error, p *Part, cause error) error {
	serr := &StreamError{Kind: kind, Err: cause}
	if p != nil {
		serr.Field = p.name
	}
	e.err = serr
	e.state = stateDone
	e.pending = nil
	if err := e.releaseAll(); err != nil {
		e.logger.Warn("failed to release sources", logger.Error(err))
	}
	e.logger.Warn("multipart stream failed", logger.Error(serr), logger.Bytes(e.written))
	return serr
}

func (e *Encoder) releaseAll() error {
	var errs []error
	if e.active != nil {
		errs = append(errs, closeSource(e.active))
		e.active = nil
		e.current = nil
	}
	for i := e.next; i < len(e.parts); i++ {
		if p := e.parts[i]; p != nil && !p.embedded {
			errs = append(errs, closeSource(p.reader))
		}
		e.parts[i] = nil
	}
	e.next = len(e.parts)
	return errors.Join(errs...)
}

// Read implements io.Reader on top of Next.
func (e *Encoder) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(e.pending) == 0 {
		chunk, err := e.Next()
		if err != nil {
			return 0, err
		}
		e.pending = chunk
	}
	n := copy(p, e.pending)
	e.pending = e.pending[n:]
	return n, nil
}

// WriteTo writes the remaining body to w. A failed write leaves the
// encoder terminal, since the consumer's position in the stream is lost.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	var total int64
	write := func(b []byte) error {
		n, err := w.Write(b)
		total += int64(n)
		if err == nil && n < len(b) {
			err = io.ErrShortWrite
		}
		if err != nil && e.err == nil {
			e.err = err
			e.state = stateDone
			e.pending = nil
			_ = e.releaseAll()
		}
		return err
	}

	if len(e.pending) > 0 {
		chunk := e.pending
		e.pending = nil
		if err := write(chunk); err != nil {
			return total, err
		}
	}
	for {
		chunk, err := e.Next()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		if err := write(chunk); err != nil {
			return total, err
		}
	}
}

// Close releases every content source still held by the encoder.
// Closing before the terminal boundary was produced makes further pulls fail
// with ErrEncoderClosed. Close is idempotent.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if e.state != stateDone && e.err == nil {
		e.err = ErrEncoderClosed
		e.logger.Debug("encoder closed early", logger.Bytes(e.written))
	}
	e.state = stateDone
	e.pending = nil
	return e.releaseAll()
}
