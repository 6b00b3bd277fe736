package formdata

import (
	"io"
	"mime"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Default content types for parts without an explicit one.
const (
	ContentTypeText   = "text/plain"
	ContentTypeBinary = "application/octet-stream"
)

// dispositionEscaper keeps names and filenames inside their quoted-string.
// CR and LF are percent-encoded the way browsers encode them in form submissions.
var dispositionEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r", "%0D",
	"\n", "%0A",
)

// Part is one field of a multipart form.
// Parts are created by Form builder methods and are immutable afterwards.
// Their content is consumed exactly once, by the Encoder of the owning Form.
type Part struct {
	name               string
	filename           string
	contentType        string
	contentDisposition string

	text     string
	embedded bool
	reader   io.Reader
	size     int64
}

func newTextPart(name, text string) *Part {
	return &Part{
		name:               name,
		contentType:        ContentTypeText,
		contentDisposition: contentDisposition(name, "", false),
		text:               text,
		embedded:           true,
		size:               int64(len(text)),
	}
}

// newReaderPart builds a reader backed part. An empty contentType selects
// the octet-stream default. size is -1 when unknown.
func newReaderPart(name string, r io.Reader, filename string, hasFilename bool, contentType string, size int64) *Part {
	if contentType == "" {
		contentType = ContentTypeBinary
	}
	return &Part{
		name:               name,
		filename:           filename,
		contentType:        contentType,
		contentDisposition: contentDisposition(name, filename, hasFilename),
		reader:             r,
		size:               size,
	}
}

// validContentType reports whether ct is a well-formed media type that can be
// written into a part header as is.
func validContentType(ct string) bool {
	if !httpguts.ValidHeaderFieldValue(ct) {
		return false
	}
	_, _, err := mime.ParseMediaType(ct)
	return err == nil
}

// validBoundary checks b against the RFC 2046 boundary grammar:
// 1 to 70 characters from bchars, not ending with a space.
func validBoundary(b string) bool {
	if len(b) == 0 || len(b) > 70 || b[len(b)-1] == ' ' {
		return false
	}
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case strings.IndexByte("'()+_,-./:=? ", c) >= 0:
		default:
			return false
		}
	}
	return true
}

func contentDisposition(name, filename string, hasFilename bool) string {
	var b strings.Builder
	b.WriteString(`form-data; name="`)
	b.WriteString(dispositionEscaper.Replace(name))
	b.WriteByte('"')
	if hasFilename {
		b.WriteString(`; filename="`)
		b.WriteString(dispositionEscaper.Replace(filename))
		b.WriteByte('"')
	}
	return b.String()
}

// readerSize reports the unread length of in-memory readers such as
// *bytes.Reader, *strings.Reader and *bytes.Buffer, or -1.
func readerSize(r io.Reader) int64 {
	if l, ok := r.(interface{ Len() int }); ok {
		return int64(l.Len())
	}
	return -1
}

// Name returns the form field name.
func (p *Part) Name() string { return p.name }

// Filename returns the filename parameter, empty when the part has none.
func (p *Part) Filename() string { return p.filename }

// ContentType returns the value of the part's Content-Type header.
func (p *Part) ContentType() string { return p.contentType }

// ContentDisposition returns the value of the part's Content-Disposition header.
func (p *Part) ContentDisposition() string { return p.contentDisposition }

// Size returns the content length in bytes, or -1 when it is not known upfront.
func (p *Part) Size() int64 { return p.size }

// open hands out the content source. Embedded text is wrapped on demand so
// the string stays owned by the part until encoding starts.
func (p *Part) open() io.Reader {
	if p.embedded {
		return strings.NewReader(p.text)
	}
	return p.reader
}

// closeSource closes r if it is closable.
func closeSource(r io.Reader) error {
	if c, ok := r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
