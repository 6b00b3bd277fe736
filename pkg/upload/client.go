package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/formdata/pkg/formdata"
	"github.com/dmitrymomot/formdata/pkg/logger"
	"github.com/dmitrymomot/formdata/pkg/requestid"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultUserAgent   = "formdata-upload/1.0"
	defaultConcurrency = 4

	// maxErrorBody caps how much of a failed response is read for the error.
	maxErrorBody = 64 * 1024
	// maxErrorText caps the response excerpt kept in StatusError.
	maxErrorText = 200
)

// Client sends forms as streaming multipart/form-data requests.
// Request bodies are never buffered, so uploads are not retried: a body can
// only be read once. Client is safe for concurrent use; each Form is not.
type Client struct {
	http        *http.Client
	logger      *slog.Logger
	userAgent   string
	headers     http.Header
	timeout     time.Duration
	concurrency int
}

// Job is one upload for SendAll. The job owns its Form.
type Job struct {
	URL  string
	Form *formdata.Form
}

// New creates a Client.
//
// Example:
//
//	client := upload.New(
//		upload.WithTimeout(time.Minute),
//		upload.WithHeader("Authorization", "Bearer "+token),
//	)
func New(opts ...Option) *Client {
	c := &Client{
		logger:      logger.Noop(),
		userAgent:   defaultUserAgent,
		headers:     make(http.Header),
		timeout:     defaultTimeout,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	c.logger = c.logger.With(logger.Component("upload"))
	return c
}

// NewFromConfig creates a Client from cfg. Options are applied after the
// configuration and win over it.
func NewFromConfig(cfg Config, opts ...Option) *Client {
	base := []Option{
		WithTimeout(cfg.Timeout),
		WithUserAgent(cfg.UserAgent),
		WithConcurrency(cfg.Concurrency),
	}
	return New(append(base, opts...)...)
}

// Do sends form to rawURL with the given method and returns the raw
// response. The caller must close the response body. Deadlines come from
// ctx only; the client timeout applies to Send.
//
// The form is consumed even when Do fails, and its content sources are
// released.
func (c *Client) Do(ctx context.Context, method, rawURL string, form *formdata.Form) (*http.Response, error) {
	if form == nil {
		return nil, ErrNilForm
	}
	if err := validateURL(rawURL); err != nil {
		discard(form)
		return nil, err
	}

	req, err := form.NewRequest(ctx, method, rawURL)
	if err != nil {
		discard(form)
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, vals := range c.headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	requestid.Propagate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	return resp, nil
}

// Send POSTs form to rawURL and fails with a *StatusError, which matches
// ErrUnexpectedStatus, unless the server answers with a 2xx status.
// The response body is drained and closed.
//
// Example:
//
//	form := formdata.New()
//	form.AddText("title", "Quarterly report")
//	if err := form.AddFile("document", "report.pdf"); err != nil {
//		return err
//	}
//	if err := client.Send(ctx, "https://example.com/upload", form); err != nil {
//		return err
//	}
func (c *Client) Send(ctx context.Context, rawURL string, form *formdata.Form) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.Do(ctx, http.MethodPost, rawURL, form)
	if err != nil {
		c.logger.WarnContext(ctx, "upload failed",
			logger.URL(rawURL),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serr := &StatusError{StatusCode: resp.StatusCode, Body: excerpt(body)}
		c.logger.WarnContext(ctx, "upload rejected",
			logger.URL(rawURL),
			logger.StatusCode(resp.StatusCode),
			logger.Duration(time.Since(start)),
			logger.Error(serr),
		)
		return serr
	}

	c.logger.InfoContext(ctx, "upload completed",
		logger.URL(rawURL),
		logger.StatusCode(resp.StatusCode),
		logger.Duration(time.Since(start)),
	)
	return nil
}

// SendAll uploads independent jobs concurrently, at most the configured
// concurrency at a time. The result holds one entry per job, in job order,
// nil for successful uploads. A failed job does not stop the others.
func (c *Client) SendAll(ctx context.Context, jobs []Job) []error {
	errs := make([]error, len(jobs))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			errs[i] = c.Send(ctx, job.URL, job.Form)
			return nil
		})
	}
	_ = g.Wait()

	c.logger.DebugContext(ctx, "batch finished",
		slog.Int("jobs", len(jobs)),
		slog.Int("failed", countErrors(errs)),
	)
	return errs
}

func validateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("%w: URL is required", ErrInvalidURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidURL)
	}
	return nil
}

// discard consumes form and closes its sources.
func discard(form *formdata.Form) {
	if enc, err := form.Encoder(); err == nil {
		_ = enc.Close()
	}
}

// excerpt flattens and shortens a response body for error messages and logs.
func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	if len(s) > maxErrorText {
		s = s[:maxErrorText] + "..."
	}
	return s
}

func countErrors(errs []error) int {
	n := 0
	for _, err := range errs {
		if err != nil {
			n++
		}
	}
	return n
}
