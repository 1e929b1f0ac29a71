// Package server exposes the add-on over HTTP: the manifest, the stream
// lookup, and a diagnostic route.
package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/dtnitsch/family-night/models"
	"github.com/dtnitsch/family-night/pkg/fetcher"
	"github.com/dtnitsch/family-night/pkg/manifest"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// StreamName is the name of the single stream entry returned per lookup.
const StreamName = "Family Night"

// SampleID is the title used by the /test route.
const SampleID = "tt0111161"

// Server serves the add-on routes for one fetcher.
type Server struct {
	pipeline *Pipeline
	manifest func() (models.Manifest, error)
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithManifest replaces the embedded manifest source.
func WithManifest(fn func() (models.Manifest, error)) Option {
	return func(s *Server) { s.manifest = fn }
}

// WithLogger sets the logger used for request and error logs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New returns a Server that looks up guides through f.
func New(f GuideFetcher, opts ...Option) *Server {
	s := &Server{
		pipeline: NewPipeline(f),
		manifest: manifest.Default,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router with the full middleware stack applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(tracing("family-night"))
	r.Use(cors)

	r.Get("/manifest.json", s.handleManifest)
	r.Get("/stream/{type}/{id}.json", s.handleStream)
	r.Get("/test", s.handleTest)

	return r
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	body, err := s.manifestJSON()
	if err != nil {
		s.logger.Error("error serving manifest", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to serve manifest"})
		return
	}
	writeBody(w, http.StatusOK, "application/json", body)
}

func (s *Server) manifestJSON() ([]byte, error) {
	m, err := s.manifest()
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	contentType := chi.URLParam(r, "type")
	id := chi.URLParam(r, "id")
	s.logger.Debug("stream lookup", "type", contentType, "id", id)

	description := s.pipeline.Describe(r.Context(), id)

	writeJSON(w, http.StatusOK, models.StreamsResponse{
		Streams: []models.Stream{{
			Name:        StreamName,
			Title:       description,
			ExternalURL: fetcher.GuideURL(id),
		}},
	})
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	description := s.pipeline.Describe(r.Context(), SampleID)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, description)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeBody(w, code, "application/json", buf.Bytes())
}

func writeBody(w http.ResponseWriter, code int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	w.Write(body)
}
