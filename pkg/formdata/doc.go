// Package formdata encodes form fields as a streaming multipart/form-data
// body (RFC 7578).
//
// A Form collects parts in order: text values, byte slices, arbitrary
// readers and files opened through a file.Source. Converting the Form into
// an Encoder yields a pull-based producer that interleaves boundary lines,
// per-part headers and part content on demand, so large files are sent
// without being buffered in memory.
//
// # Usage
//
//	import "github.com/dmitrymomot/formdata/pkg/formdata"
//
//	form := formdata.New()
//	form.AddText("title", "Quarterly report")
//	if err := form.AddFile("report", "q3.csv"); err != nil {
//		return err
//	}
//
//	req, err := form.NewRequest(ctx, http.MethodPost, "https://example.com/upload")
//	if err != nil {
//		return err
//	}
//	resp, err := http.DefaultClient.Do(req)
//
// The Encoder can also be driven directly:
//
//	enc, _ := form.Encoder()
//	defer enc.Close()
//	for {
//		chunk, err := enc.Next()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		send(chunk) // chunk is reused by the next call
//	}
//
// # Wire Format
//
// Every part is framed as
//
//	CRLF--<boundary>CRLF
//	Content-Type: <type>CRLF
//	Content-Disposition: form-data; name="<name>"[; filename="<filename>"]CRLF
//	CRLF
//	<content>
//
// and the body ends with CRLF--<boundary>-- without a trailing CRLF. An empty
// form encodes to the terminal boundary alone.
//
// Text parts default to text/plain, every other part to
// application/octet-stream. For files the content type is looked up from the
// extension; an explicit type passed to AddFileWithMIME is only used when the
// lookup finds nothing, and the type reported by the source (S3 object
// metadata) comes last. Caller supplied types must parse as media types:
// AddFileWithMIME rejects a malformed one with ErrInvalidInput and
// AddReaderFileWithMIME falls back to application/octet-stream.
//
// # Boundaries
//
// The boundary is generated once per Form by a BoundaryGenerator. The default
// draws six random alphanumeric characters; UUIDBoundary and StaticBoundary
// are provided, and any func() string can be plugged in with
// WithBoundaryGenerator. Part content is not scanned for the boundary, so
// callers streaming untrusted or very large content should prefer
// UUIDBoundary.
//
// # Error Handling
//
// Builder errors are returned immediately and leave the Form unchanged:
//
//	err := form.AddFile("input", "/tmp")
//	if errors.Is(err, formdata.ErrInvalidInput) {
//		// not a regular file
//	} else if errors.Is(err, formdata.ErrFileOpen) {
//		// could not be opened
//	}
//
// Failures while streaming are reported by Next, Read and WriteTo as a
// *StreamError matching ErrBoundaryWrite, ErrHeaderWrite or ErrContentRead.
// They are permanent: the encoder releases its sources and returns the same
// error on every later call. There are no retries.
//
// # Resource Handling
//
// Sources implementing io.Closer are closed as soon as they are exhausted.
// Close releases whatever the encoder still holds, so an encoder can be
// abandoned midway; later pulls then fail with ErrEncoderClosed.
// http.Client closes request bodies automatically.
package formdata
