package echo

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formdata/pkg/file"
	"github.com/dmitrymomot/formdata/pkg/logger"
	"github.com/dmitrymomot/formdata/pkg/requestid"
)

// PartSummary describes one received part. Filename is sanitized to a base
// name in NFC form.
type PartSummary struct {
	Name        string `json:"name"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// handler serializes dumps so concurrent bodies do not interleave on out.
type handler struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger
}

// NewHandler returns the debug routes:
//
//	GET  /healthz  liveness probe
//	POST /parts    parses a multipart body and answers with a JSON summary
//	*    /*        copies the raw body to out and echoes it back
//
// out receives raw bodies exactly as they arrived on the wire. A nil out
// discards them.
func NewHandler(out io.Writer, log *slog.Logger) http.Handler {
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = logger.Noop()
	}
	h := &handler{out: out, logger: log.With(logger.Component("echo"))}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Get("/healthz", h.health)
	r.Post("/parts", h.parts)
	r.HandleFunc("/*", h.dump)
	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ALIVE"))
}

// dump streams the body to out and back to the client in one pass.
func (h *handler) dump(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	// The response is written while the body is still being read.
	_ = http.NewResponseController(w).EnableFullDuplex()
	if ct := r.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}

	h.mu.Lock()
	n, err := io.Copy(w, io.TeeReader(r.Body, h.out))
	h.mu.Unlock()

	if err != nil {
		h.logger.WarnContext(r.Context(), "echo interrupted", logger.Bytes(n), logger.Error(err))
		return
	}
	h.logger.InfoContext(r.Context(), "request echoed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Bytes(n),
		logger.Duration(time.Since(start)),
	)
}

// parts reads the body part by part without buffering content.
func (h *handler) parts(w http.ResponseWriter, r *http.Request) {
	mr, err := r.MultipartReader()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summaries := []PartSummary{}
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			h.logger.WarnContext(r.Context(), "malformed multipart body", logger.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		n, err := io.Copy(io.Discard, p)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var filename string
		if p.FileName() != "" {
			filename = file.SanitizeFilename(p.FileName())
		}
		summaries = append(summaries, PartSummary{
			Name:        p.FormName(),
			Filename:    filename,
			ContentType: p.Header.Get("Content-Type"),
			Size:        n,
		})
		h.logger.DebugContext(r.Context(), "part received",
			logger.Field(p.FormName()),
			logger.Filename(p.FileName()),
			logger.Bytes(n),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summaries); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write summary", logger.Error(err))
	}
}
