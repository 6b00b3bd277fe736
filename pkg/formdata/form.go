package formdata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/dmitrymomot/formdata/pkg/file"
	"github.com/dmitrymomot/formdata/pkg/logger"
)

// Form is an ordered collection of parts sharing one boundary.
// Parts are encoded in the order they were added. A Form is converted into
// an Encoder exactly once; builder calls after that are rejected.
// A Form is not safe for concurrent use.
type Form struct {
	parts    []*Part
	boundary string
	consumed bool

	generator  BoundaryGenerator
	source     file.Source
	lookup     func(ext string) (string, bool)
	logger     *slog.Logger
	bufferSize int
}

// New creates an empty form and generates its boundary.
func New(opts ...Option) *Form {
	f := &Form{
		generator:  RandomBoundary,
		source:     &file.LocalSource{},
		lookup:     file.MIMETypeByExtension,
		logger:     logger.Noop(),
		bufferSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.boundary = f.generator()
	f.logger = f.logger.With(logger.Component("formdata"))
	return f
}

// Boundary returns the boundary shared by all parts.
func (f *Form) Boundary() string { return f.boundary }

// Len returns the number of queued parts.
func (f *Form) Len() int { return len(f.parts) }

// Parts returns the queued parts in encoding order.
func (f *Form) Parts() []*Part {
	out := make([]*Part, len(f.parts))
	copy(out, f.parts)
	return out
}

// AddText adds a text/plain field.
//
// Example:
//
//	form.AddText("text", "Hello World!")
func (f *Form) AddText(name, text string) {
	f.push(newTextPart(name, text))
}

// AddBytes adds an application/octet-stream field holding data.
func (f *Form) AddBytes(name string, data []byte) {
	f.push(newReaderPart(name, bytes.NewReader(data), "", false, "", int64(len(data))))
}

// AddReader adds an application/octet-stream field read from r.
// The form takes ownership of r: it is read to exhaustion by the encoder and
// closed afterwards if it implements io.Closer.
func (f *Form) AddReader(name string, r io.Reader) {
	f.push(newReaderPart(name, r, "", false, "", readerSize(r)))
}

// AddReaderFile adds a file field read from r with an explicit filename.
func (f *Form) AddReaderFile(name string, r io.Reader, filename string) {
	f.push(newReaderPart(name, r, filename, true, "", readerSize(r)))
}

// AddReaderFileWithMIME adds a file field read from r with an explicit
// filename and content type. A content type that is not a valid media type
// is logged and replaced with application/octet-stream.
func (f *Form) AddReaderFileWithMIME(name string, r io.Reader, filename, contentType string) {
	if contentType != "" && !validContentType(contentType) {
		f.logger.Warn("invalid content type, using default",
			logger.Field(name),
			slog.String("content_type", contentType),
			logger.Error(ErrInvalidInput),
		)
		contentType = ""
	}
	f.push(newReaderPart(name, r, filename, true, contentType, readerSize(r)))
}

// AddFile opens path and adds it as a file field. The content type is
// derived from the path's extension and the filename is the path itself.
//
// It fails with ErrFileOpen when the path cannot be opened and with
// ErrInvalidInput when it is not a regular file. On failure the form is
// left unchanged.
//
// Example:
//
//	if err := form.AddFile("input", "report.csv"); err != nil {
//		return err
//	}
func (f *Form) AddFile(name, path string) error {
	return f.AddFileContext(context.Background(), name, path)
}

// AddFileContext is AddFile with a context for sources that perform I/O,
// such as S3.
func (f *Form) AddFileContext(ctx context.Context, name, path string) error {
	return f.addFile(ctx, name, path, "")
}

// AddFileWithMIME works like AddFile but uses contentType when the extension
// lookup finds nothing. A content type derived from the extension always
// wins. A malformed contentType fails with ErrInvalidInput.
func (f *Form) AddFileWithMIME(name, path, contentType string) error {
	return f.AddFileWithMIMEContext(context.Background(), name, path, contentType)
}

// AddFileWithMIMEContext is AddFileWithMIME with a context.
func (f *Form) AddFileWithMIMEContext(ctx context.Context, name, path, contentType string) error {
	return f.addFile(ctx, name, path, contentType)
}

func (f *Form) addFile(ctx context.Context, name, path, fallback string) error {
	if f.consumed {
		return ErrFormConsumed
	}
	if fallback != "" && !validContentType(fallback) {
		return fmt.Errorf("%w: content type %q", ErrInvalidInput, fallback)
	}

	rc, info, err := f.source.Open(ctx, path)
	if err != nil {
		if errors.Is(err, file.ErrNotRegularFile) {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}

	// Malformed lookup results and source metadata are skipped.
	contentType := fallback
	if ext := filepath.Ext(path); ext != "" {
		if ct, ok := f.lookup(ext); ok && validContentType(ct) {
			contentType = ct
		}
	}
	if contentType == "" && validContentType(info.ContentType) {
		contentType = info.ContentType
	}

	f.push(newReaderPart(name, rc, path, true, contentType, info.Size))
	return nil
}

func (f *Form) push(p *Part) {
	if f.consumed {
		f.logger.Warn("part added after form was consumed, ignoring",
			logger.Field(p.name),
			logger.Error(ErrFormConsumed),
		)
		return
	}
	f.parts = append(f.parts, p)
	f.logger.Debug("part added",
		logger.Field(p.name),
		logger.Filename(p.filename),
		slog.String("content_type", p.contentType),
		logger.Bytes(p.size),
	)
}

// ContentLength returns the exact size of the encoded body, or -1 when the
// size of at least one part is unknown.
func (f *Form) ContentLength() int64 {
	var cw countWriter
	for _, p := range f.parts {
		if p.size < 0 {
			return -1
		}
		_ = writeBoundary(&cw, f.boundary)
		_ = writeHeaders(&cw, p)
		cw.n += p.size
	}
	_ = writeFinalBoundary(&cw, f.boundary)
	return cw.n
}

// Encoder converts the form into a streaming Encoder. The encoder owns the
// parts' content sources from then on; a second call returns ErrFormConsumed.
func (f *Form) Encoder() (*Encoder, error) {
	if f.consumed {
		return nil, ErrFormConsumed
	}
	f.consumed = true

	parts := f.parts
	f.parts = nil
	return newEncoder(f.boundary, parts, f.bufferSize, f.logger), nil
}
