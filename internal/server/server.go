// Package server exposes the workbench over HTTP.
//
// All graph payloads are .vsg documents. Requests send the document as the
// body; responses return either a document, a JSON value or a rendered
// export.
//
//	GET    /health
//	GET    /version
//	GET    /generators
//	POST   /generate/{name}       {"params": "5", "loops": true}
//	GET    /layouts
//	POST   /layout/{algorithm}    .vsg body
//	POST   /analyze               .vsg body
//	POST   /export/{format}       .vsg body, format svg or dot
//	GET    /documents
//	POST   /documents             .vsg body
//	GET    /documents/{id}
//	PUT    /documents/{id}        .vsg body
//	DELETE /documents/{id}
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/visigraph/pkg/cache"
	"github.com/matzehuels/visigraph/pkg/codec"
	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/generator"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/settings"
	"github.com/matzehuels/visigraph/pkg/store"
)

// maxBodySize caps request bodies.
const maxBodySize = 8 << 20

// Server handles API requests.
type Server struct {
	router     chi.Router
	cfg        *settings.Settings
	store      store.Store
	cache      cache.Cache
	keyer      cache.Keyer
	ttl        time.Duration
	generators *generator.Registry
	logger     *log.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithCache caches rendered exports in c.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) { s.cache, s.ttl = c, ttl }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithGenerators replaces the built-in generator registry.
func WithGenerators(r *generator.Registry) Option {
	return func(s *Server) { s.generators = r }
}

// New creates a server storing documents in st. A nil cfg uses the
// built-in settings.
func New(cfg *settings.Settings, st store.Store, opts ...Option) *Server {
	s := &Server{
		cfg:        settings.OrDefault(cfg),
		store:      st,
		cache:      cache.NewNullCache(),
		keyer:      cache.NewScopedKeyer(nil, "server:"),
		generators: generator.Builtin(),
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/generators", s.handleGenerators)
	r.Post("/generate/{name}", s.handleGenerate)
	r.Get("/layouts", s.handleLayouts)
	r.Post("/layout/{algorithm}", s.handleLayout)
	r.Post("/analyze", s.handleAnalyze)
	r.Post("/export/{format}", s.handleExport)

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.handleListDocuments)
		r.Post("/", s.handleCreateDocument)
		r.Get("/{id}", s.handleGetDocument)
		r.Put("/{id}", s.handlePutDocument)
		r.Delete("/{id}", s.handleDeleteDocument)
	})
	s.router = r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("Listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

// =============================================================================
// Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= 500 {
		s.logger.Error("Request failed", "id", requestIDFrom(r.Context()), "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeDocument(w http.ResponseWriter, status int, g *graph.Graph) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(codec.MarshalGraph(g))
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return data, nil
}

// readGraph decodes the .vsg request body.
func (s *Server) readGraph(w http.ResponseWriter, r *http.Request) (*graph.Graph, []byte, error) {
	data, err := readBody(w, r)
	if err != nil {
		return nil, nil, err
	}
	g, err := codec.UnmarshalGraph(data, s.cfg)
	if err != nil {
		return nil, nil, err
	}
	return g, data, nil
}
