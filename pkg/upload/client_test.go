package upload_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formdata/pkg/config"
	"github.com/dmitrymomot/formdata/pkg/formdata"
	"github.com/dmitrymomot/formdata/pkg/requestid"
	"github.com/dmitrymomot/formdata/pkg/upload"
)

// received is what the test server saw in one upload.
type received struct {
	title     string
	filename  string
	content   string
	userAgent string
	token     string
	requestID string
}

type testServer struct {
	*httptest.Server
	mu       sync.Mutex
	uploads  []received
	inFlight atomic.Int32
	peak     atomic.Int32
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Post("/upload", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rec := received{
			title:     r.FormValue("title"),
			userAgent: r.UserAgent(),
			token:     r.Header.Get("X-Token"),
			requestID: requestid.FromContext(r.Context()),
		}
		if f, hdr, err := r.FormFile("file"); err == nil {
			data, _ := io.ReadAll(f)
			_ = f.Close()
			rec.filename = hdr.Filename
			rec.content = string(data)
		}
		ts.mu.Lock()
		ts.uploads = append(ts.uploads, rec)
		ts.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	r.Post("/slow", func(w http.ResponseWriter, r *http.Request) {
		n := ts.inFlight.Add(1)
		defer ts.inFlight.Add(-1)
		for {
			peak := ts.peak.Load()
			if n <= peak || ts.peak.CompareAndSwap(peak, n) {
				break
			}
		}
		_, _ = io.Copy(io.Discard, r.Body)
		time.Sleep(20 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/reject", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		http.Error(w, "file too large\nmax 1MB", http.StatusRequestEntityTooLarge)
	})
	r.Post("/hang", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})
	r.Put("/upload", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusAccepted)
	})

	ts.Server = httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) received() []received {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]received(nil), ts.uploads...)
}

func newForm(title string) *formdata.Form {
	form := formdata.New()
	form.AddText("title", title)
	form.AddReaderFile("file", strings.NewReader("content of "+title), title+".txt")
	return form
}

func TestClient_Send(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	client := upload.New(
		upload.WithHTTPClient(srv.Client()),
		upload.WithUserAgent("test-agent/2.0"),
		upload.WithHeader("X-Token", "secret"),
		upload.WithHeader("Content-Type", "ignored"),
	)

	ctx := requestid.WithContext(context.Background(), "upload-42")
	require.NoError(t, client.Send(ctx, srv.URL+"/upload", newForm("report")))

	uploads := srv.received()
	require.Len(t, uploads, 1)
	assert.Equal(t, received{
		title:     "report",
		filename:  "report.txt",
		content:   "content of report",
		userAgent: "test-agent/2.0",
		token:     "secret",
		requestID: "upload-42",
	}, uploads[0])
}

func TestClient_SendRejected(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	client := upload.New(upload.WithHTTPClient(srv.Client()))

	err := client.Send(context.Background(), srv.URL+"/reject", newForm("big"))
	require.Error(t, err)
	assert.ErrorIs(t, err, upload.ErrUnexpectedStatus)

	var serr *upload.StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, serr.StatusCode)
	assert.Equal(t, "file too large max 1MB", serr.Body)
}

func TestClient_SendTimeout(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	client := upload.New(upload.WithHTTPClient(srv.Client()), upload.WithTimeout(50*time.Millisecond))

	err := client.Send(context.Background(), srv.URL+"/hang", newForm("slow"))
	require.Error(t, err)
	assert.ErrorIs(t, err, upload.ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_InvalidInput(t *testing.T) {
	t.Parallel()

	client := upload.New()
	ctx := context.Background()

	tests := []struct {
		name string
		url  string
		form *formdata.Form
		want error
	}{
		{"nil form", "http://example.com", nil, upload.ErrNilForm},
		{"empty url", "", formdata.New(), upload.ErrInvalidURL},
		{"unsupported scheme", "ftp://example.com/file", formdata.New(), upload.ErrInvalidURL},
		{"missing host", "http:///path", formdata.New(), upload.ErrInvalidURL},
		{"invalid header", "http://example.com", formdata.New(formdata.WithBoundary("a\nb")), upload.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := client.Send(ctx, tt.url, tt.form)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

type closeRecorder struct {
	io.Reader
	closed atomic.Bool
}

func (c *closeRecorder) Close() error {
	c.closed.Store(true)
	return nil
}

func TestClient_ReleasesFormOnFailure(t *testing.T) {
	t.Parallel()

	src := &closeRecorder{Reader: strings.NewReader("data")}
	form := formdata.New()
	form.AddReader("f", src)

	err := upload.New().Send(context.Background(), "not a url", form)
	assert.ErrorIs(t, err, upload.ErrInvalidURL)
	assert.True(t, src.closed.Load())

	_, err = form.Encoder()
	assert.ErrorIs(t, err, formdata.ErrFormConsumed)
}

func TestClient_Do(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	client := upload.New(upload.WithHTTPClient(srv.Client()))

	resp, err := client.Do(context.Background(), http.MethodPut, srv.URL+"/upload", newForm("put"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	_, err = client.Do(context.Background(), "BAD METHOD", srv.URL+"/upload", newForm("bad"))
	assert.ErrorIs(t, err, upload.ErrInvalidRequest)
}

func TestClient_SendAll(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	client := upload.New(upload.WithHTTPClient(srv.Client()), upload.WithConcurrency(2))

	jobs := make([]upload.Job, 0, 7)
	for i := range 6 {
		jobs = append(jobs, upload.Job{URL: srv.URL + "/slow", Form: newForm(strings.Repeat("x", i+1))})
	}
	jobs = append(jobs, upload.Job{URL: srv.URL + "/reject", Form: newForm("rejected")})

	errs := client.SendAll(context.Background(), jobs)
	require.Len(t, errs, len(jobs))
	for i := range 6 {
		assert.NoError(t, errs[i], "job %d", i)
	}
	assert.ErrorIs(t, errs[6], upload.ErrUnexpectedStatus)

	assert.LessOrEqual(t, srv.peak.Load(), int32(2))
	assert.Positive(t, srv.peak.Load())
}

func TestClient_SendAllCanceled(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	client := upload.New(upload.WithHTTPClient(srv.Client()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errs := client.SendAll(ctx, []upload.Job{
		{URL: srv.URL + "/upload", Form: newForm("a")},
		{URL: srv.URL + "/upload", Form: newForm("b")},
	})
	for _, err := range errs {
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	}
	assert.Empty(t, srv.received())
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	var cfg upload.Config
	require.NoError(t, config.Load(&cfg,
		config.WithPrefix(upload.EnvPrefix),
		config.WithEnvironment(map[string]string{
			"UPLOAD_TIMEOUT":     "2s",
			"UPLOAD_USER_AGENT":  "cfg-agent",
			"UPLOAD_CONCURRENCY": "1",
		}),
	))
	assert.Equal(t, upload.Config{Timeout: 2 * time.Second, UserAgent: "cfg-agent", Concurrency: 1}, cfg)

	srv := newTestServer(t)
	client := upload.NewFromConfig(cfg, upload.WithHTTPClient(srv.Client()))
	require.NoError(t, client.Send(context.Background(), srv.URL+"/upload", newForm("cfg")))
	uploads := srv.received()
	require.Len(t, uploads, 1)
	assert.Equal(t, "cfg-agent", uploads[0].userAgent)
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	var cfg upload.Config
	require.NoError(t, config.Load(&cfg, config.WithPrefix(upload.EnvPrefix), config.WithEnvironment(map[string]string{})))
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "formdata-upload/1.0", cfg.UserAgent)
	assert.Equal(t, 4, cfg.Concurrency)
}
