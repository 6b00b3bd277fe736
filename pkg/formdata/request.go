package formdata

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/formdata/pkg/logger"
)

// ContentType returns the request Content-Type header value for the form:
// multipart/form-data; boundary="<boundary>".
func (f *Form) ContentType() string {
	return `multipart/form-data; boundary="` + f.boundary + `"`
}

// SetBody installs the form as the body of req and sets its Content-Type
// header. ContentLength is set when every part has a known size and to -1
// (chunked transfer) otherwise. The form is consumed on success only.
//
// A boundary outside the RFC 2046 grammar (1 to 70 characters from the
// boundary alphabet) fails with ErrInvalidHeader.
//
// Example:
//
//	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
//	if err := form.SetBody(req); err != nil {
//		return err
//	}
//	resp, err := http.DefaultClient.Do(req)
func (f *Form) SetBody(req *http.Request) error {
	if req == nil {
		return ErrNilRequest
	}

	if !validBoundary(f.boundary) {
		return fmt.Errorf("%w: boundary %q", ErrInvalidHeader, f.boundary)
	}
	contentType := f.ContentType()

	length := f.ContentLength()
	enc, err := f.Encoder()
	if err != nil {
		return err
	}

	if req.Header == nil {
		req.Header = make(http.Header)
	}
	req.Header.Set("Content-Type", contentType)
	req.Body = enc
	req.GetBody = nil
	req.ContentLength = length

	f.logger.DebugContext(req.Context(), "body attached",
		logger.Boundary(f.boundary),
		logger.Bytes(length),
	)
	return nil
}

// NewRequest creates a request for method and url carrying the form as its
// body. Request construction errors are returned unchanged.
func (f *Form) NewRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	if err := f.SetBody(req); err != nil {
		return nil, err
	}
	return req, nil
}
