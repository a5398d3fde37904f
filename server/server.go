package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/siherrmann/speechgraph/core/transcript"
	"github.com/siherrmann/speechgraph/helper"
	"github.com/siherrmann/speechgraph/model"
)

// Config holds HTTP server configuration
type Config struct {
	ListenAddr   string
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server exposes a transcript feed and its graph over HTTP
type Server struct {
	router   chi.Router
	cfg      Config
	feed     *transcript.Feed
	gatherer prometheus.Gatherer
	log      *slog.Logger
}

// SegmentRequest is the body of POST /api/v1/segments
type SegmentRequest struct {
	ID      *uuid.UUID `json:"id,omitempty"`
	Text    string     `json:"text"`
	IsFinal bool       `json:"is_final"`
}

// SegmentResponse is returned after a segment was pushed
type SegmentResponse struct {
	SegmentID uuid.UUID       `json:"segment_id"`
	Extracted bool            `json:"extracted"`
	Graph     model.GraphData `json:"graph"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// New creates a Server with chi router, middleware and all routes
func New(cfg Config, feed *transcript.Feed, gatherer prometheus.Gatherer, logger *slog.Logger) (*Server, error) {
	if cfg.ListenAddr == "" {
		return nil, helper.NewError("create server", fmt.Errorf("listen address is required"))
	}
	if feed == nil {
		return nil, helper.NewError("create server", fmt.Errorf("feed is nil"))
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 15 * time.Second
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(corsMiddleware(cfg.CORSOrigins))

	s := &Server{
		router:   r,
		cfg:      cfg,
		feed:     feed,
		gatherer: gatherer,
		log:      logger,
	}
	s.registerRoutes()

	return s, nil
}

// Handler returns the HTTP handler for use with httptest or custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Listening", slog.String("addr", s.cfg.ListenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return helper.NewError("listen", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return helper.NewError("shutdown", err)
		}
		return nil
	}
}

func (s *Server) registerRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/segments", s.handlePushSegment)
		r.Get("/transcript", s.handleTranscript)
		r.Get("/graph", s.handleGraph)
		r.Delete("/graph", s.handleClear)
		r.Get("/entities/{id}/neighbors", s.handleNeighbors)
	})
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})
}
