// Package api exposes tasks and analytics over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/imsachin001/chronosync/pkg/observability"
)

// HeaderUserID selects the acting user. Requests without it act as the
// configured default user.
const HeaderUserID = "X-User-ID"

// HeaderCorrelationID carries a caller-supplied correlation ID.
const HeaderCorrelationID = "X-Correlation-ID"

// Server is the HTTP API server.
type Server struct {
	router *chi.Mux
	server *http.Server
	logger *slog.Logger

	defaultUser uuid.UUID
	tasks       *TaskHandler
	analytics   *AnalyticsHandler
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	DefaultUser  uuid.UUID
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates the API server and registers its routes.
func NewServer(cfg ServerConfig, tasks *TaskHandler, analytics *AnalyticsHandler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:      chi.NewRouter(),
		logger:      logger,
		defaultUser: cfg.DefaultUser,
		tasks:       tasks,
		analytics:   analytics,
	}
	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) registerRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.RequestSize(1 << 20))
	s.router.Use(s.requestContext)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", s.tasks.Create)
			r.Get("/", s.tasks.List)
			r.Patch("/{id}/toggle", s.tasks.Toggle)
			r.Delete("/{id}", s.tasks.Delete)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/stats", s.analytics.Stats)
			r.Get("/productivity-score", s.analytics.ProductivityScore)
			r.Get("/avg-completion-time", s.analytics.AverageCompletionTime)
			r.Get("/completion-streak", s.analytics.CompletionStreak)
			r.Get("/week-over-week", s.analytics.WeekOverWeek)
			r.Get("/category-completions", s.analytics.CategoryCompletions)
			r.Get("/productivity-insights", s.analytics.Insights)
			r.Get("/badges", s.analytics.Badges)
			r.Get("/dashboard", s.analytics.Dashboard)
		})

		r.Route("/maintenance", func(r chi.Router) {
			r.Post("/fix-badges", s.analytics.FixBadges)
			r.Post("/migrate-category-stats", s.analytics.MigrateCategoryStats)
			r.Post("/rebuild-stats", s.analytics.RebuildStats)
		})
	})
}

// requestContext attaches the correlation ID and acting user to the
// request context and logs each request once it completes.
func (s *Server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(HeaderCorrelationID)
		if correlationID == "" {
			correlationID = chimiddleware.GetReqID(r.Context())
		}
		ctx := observability.WithCorrelationID(r.Context(), correlationID)

		userID := s.defaultUser
		if raw := r.Header.Get(HeaderUserID); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s header", HeaderUserID))
				return
			}
			userID = parsed
		}
		ctx = observability.WithUserID(ctx, userID)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		s.logger.InfoContext(ctx, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// userFrom returns the acting user resolved by requestContext.
func userFrom(r *http.Request) uuid.UUID {
	return observability.UserIDFromContext(r.Context())
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
