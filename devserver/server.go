package devserver

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/poiesic/omnisearch/source"
	"github.com/poiesic/omnisearch/storage"
)

// Server answers source searches from a listing repository.
type Server struct {
	repo     storage.ListingRepository
	adapters []source.Adapter
	logger   *slog.Logger
	router   *chi.Mux
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithAdapters replaces the served sources.
// Default is source.Defaults().
func WithAdapters(adapters ...source.Adapter) Option {
	return func(s *Server) error {
		s.adapters = adapters
		return nil
	}
}

// New creates a server with one route per source endpoint.
func New(repo storage.ListingRepository, opts ...Option) (*Server, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	s := &Server{
		repo:     repo,
		adapters: source.Defaults(),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelDebug),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	for _, adapter := range s.adapters {
		h := s.handleSearch(adapter)
		r.Get(adapter.Endpoint(), h)
		if trimmed := strings.TrimSuffix(adapter.Endpoint(), "/"); trimmed != "" && trimmed != adapter.Endpoint() {
			r.Get(trimmed, h)
		}
	}
	s.router = r

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleSearch serves GET {endpoint}?search={term}.
func (s *Server) handleSearch(adapter source.Adapter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("search")

		listings, err := s.repo.SearchListings(r.Context(), adapter.Kind(), term)
		if err != nil {
			s.logger.Error("catalog search failed", "source", adapter.Kind(), "term", term, "err", err)
			http.Error(w, "catalog unavailable", http.StatusInternalServerError)
			return
		}

		records := make([]jsoniter.RawMessage, len(listings))
		for i, l := range listings {
			records[i] = jsoniter.RawMessage(l.Body)
		}
		payload, err := adapter.Shape().Encode(records)
		if err != nil {
			s.logger.Error("encoding payload failed", "source", adapter.Kind(), "err", err)
			http.Error(w, "encoding failed", http.StatusInternalServerError)
			return
		}

		s.logger.Debug("catalog search", "source", adapter.Kind(), "term", term, "hits", len(listings))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	}
}
