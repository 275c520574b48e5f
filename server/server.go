// Package server exposes snapshot rendering over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ByLCY/codeshot/config"
	"github.com/ByLCY/codeshot/highlight"
	"github.com/ByLCY/codeshot/renderer"
	"github.com/ByLCY/codeshot/snapshot"
)

// maxBodyBytes bounds the JSON request body.
const maxBodyBytes = 4 << 20

// Options configures the HTTP server.
type Options struct {
	Defaults config.Defaults
	Logger   *log.Logger
	// Timeout caps a single render. Zero means no limit.
	Timeout time.Duration
}

// Server renders snapshots for HTTP clients. One highlight cache and syntax set
// are shared by all requests.
type Server struct {
	defaults config.Defaults
	logger   *log.Logger
	timeout  time.Duration
	syntaxes *highlight.SyntaxSet
	cache    *highlight.Cache
}

// New creates a server. A zero Defaults falls back to config.BuiltinDefaults.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Defaults == (config.Defaults{}) {
		opts.Defaults = config.BuiltinDefaults()
	}
	return &Server{
		defaults: opts.Defaults,
		logger:   opts.Logger,
		timeout:  opts.Timeout,
		syntaxes: highlight.NewSyntaxSet(),
		cache:    highlight.NewCache(0),
	}
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/themes", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, highlight.ThemeNames())
	})
	r.Get("/languages", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, highlight.LanguageNames())
	})
	r.Post("/snapshot", s.handleSnapshot)
	return r
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	logger := s.logger.With("id", id, "request", middleware.GetReqID(r.Context()))
	w.Header().Set("X-Snapshot-ID", id)

	var params config.Snapshot
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("解析请求失败: %w", err))
		return
	}
	// 服务端不读取本地文件
	if params.Code.Source != "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: code.source is not accepted over HTTP", config.ErrInvalid))
		return
	}
	if params.Name == "" {
		params.Name = id
	}
	params.ApplyDefaults(s.defaults)
	params.Fonts.Dir = s.defaults.FontsDir
	params.Bind(nil)

	start := time.Now()
	img, err := snapshot.Take(r.Context(), &params, snapshot.Options{
		Logger:   logger,
		Syntaxes: s.syntaxes,
		Cache:    s.cache,
	})
	if err != nil {
		status := statusFor(err)
		logger.Warn("snapshot failed", "status", status, "err", err)
		writeError(w, status, err)
		return
	}
	logger.Info("snapshot rendered", "format", img.Format, "bytes", len(img.Data), "elapsed", time.Since(start).Round(time.Millisecond))

	w.Header().Set("Content-Type", img.Format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, config.ErrInvalid),
		errors.Is(err, highlight.ErrUnknownTheme),
		errors.Is(err, highlight.ErrUnsupportedSyntax),
		errors.Is(err, renderer.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
