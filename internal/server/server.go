// Package server exposes document generation and the product catalog over
// HTTP. It is the serve-mode counterpart of the generate command: clients
// post a sheet definition and receive the finished PDF, and scanning
// stations post decoded counts back against the catalog.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/scanform/scanform/internal/store"
	"github.com/scanform/scanform/pkg/cache"
	"github.com/scanform/scanform/pkg/errors"
	"github.com/scanform/scanform/pkg/form"
	"github.com/scanform/scanform/pkg/generate"
	"github.com/scanform/scanform/pkg/layout"
)

// Server holds the handler dependencies.
type Server struct {
	catalog store.Catalog
	cache   cache.Cache
	config  layout.Config
	logger  *log.Logger
}

// Options configures a Server.
type Options struct {
	Catalog store.Catalog // required
	Cache   cache.Cache   // optional; nil disables artifact caching
	Config  layout.Config // zero value means layout.Default()
	Logger  *log.Logger   // optional; nil means log.Default()
}

// New creates a Server.
func New(opts Options) *Server {
	cfg := opts.Config
	if cfg == (layout.Config{}) {
		cfg = layout.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		catalog: opts.Catalog,
		cache:   opts.Cache,
		config:  cfg,
		logger:  logger,
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Post("/documents", s.handleGenerateDocument)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.handleListProducts)
		r.Put("/{key}", s.handlePutProduct)
		r.Get("/{key}", s.handleGetProduct)
		r.Patch("/{key}/name", s.handleRenameProduct)
		r.Post("/{key}/count", s.handleIncrementCount)
	})

	return r
}

// logRequests logs method, path, status and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerateDocument accepts a sheet as JSON and responds with the
// rendered PDF.
func (s *Server) handleGenerateDocument(w http.ResponseWriter, r *http.Request) {
	var sheet form.Sheet
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sheet); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidSheet, err, "decode sheet"))
		return
	}

	result, err := generate.Render(r.Context(), &sheet, generate.Options{
		Config: s.config,
		Cache:  s.cache,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("rendered document",
		"client", sheet.Client.Name,
		"rows", result.Rows,
		"cached", result.Cached,
		"bytes", len(result.Data))

	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handlePutProduct creates or replaces a catalog entry. The key in the
// URL wins over any key in the body.
func (s *Server) handlePutProduct(w http.ResponseWriter, r *http.Request) {
	var p store.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode product"))
		return
	}
	p.Key = chi.URLParam(r, "key")

	if err := s.catalog.Put(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// renameUpdate is the body of a rename request.
type renameUpdate struct {
	Name string `json:"name"`
}

// handleRenameProduct updates only the display name of an existing
// product. Unlike PUT, the running count is left untouched, so a label
// fix never loses tallied scans.
func (s *Server) handleRenameProduct(w http.ResponseWriter, r *http.Request) {
	var upd renameUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode rename"))
		return
	}

	key := chi.URLParam(r, "key")
	if err := s.catalog.Rename(r.Context(), key, upd.Name); err != nil {
		s.writeError(w, err)
		return
	}

	p, err := s.catalog.Get(r.Context(), key)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// countUpdate is the body of a count increment request.
type countUpdate struct {
	Delta int `json:"delta"`
}

// handleIncrementCount adds a decoded count to a product. Unknown keys
// create the product, so sheets printed from an older catalog still land.
func (s *Server) handleIncrementCount(w http.ResponseWriter, r *http.Request) {
	var upd countUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode count update"))
		return
	}

	p, err := s.catalog.Increment(r.Context(), chi.URLParam(r, "key"), upd.Delta)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// errorBody is the JSON shape of error responses.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps the error code onto an HTTP status and writes a JSON
// body carrying the machine-readable code.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

// statusFor maps error codes onto HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidSpec, errors.ErrCodeInvalidSheet,
		errors.ErrCodeInvalidPath, errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeLayoutOverflow:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "shutdown server")
		}
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeIO, err, "serve on %s", addr)
		}
		return nil
	}
}
