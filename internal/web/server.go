package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/eviction-cares/internal/config"
	"github.com/eviction-cares/internal/web/handlers"
	"github.com/eviction-cares/internal/web/middleware"
)

// Services are the engine components the API fronts
type Services struct {
	DB          handlers.Pinger
	Suggestions handlers.Suggestions
	Pipeline    handlers.Ingestor
	Runs        handlers.Runs
	Audit       handlers.History
}

// Server represents the web server
type Server struct {
	config     config.ServerConfig
	services   Services
	httpServer *http.Server
	router     *mux.Router
	handler    http.Handler
	logger     *zap.Logger
}

// NewServer creates a new web server instance
func NewServer(cfg config.ServerConfig, services Services, logger *zap.Logger) *Server {
	server := &Server{
		config:   cfg,
		services: services,
		logger:   logger,
	}

	server.setupRoutes()

	// Uploads are geocoded inside the request, so writes get a long timeout.
	server.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server.handler,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 30 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	healthHandler := &handlers.HealthHandler{DB: s.services.DB, Logger: s.logger}
	uploadHandler := &handlers.UploadHandler{Pipeline: s.services.Pipeline, MaxBytes: s.config.MaxUploadBytes, Logger: s.logger}
	suggestionsHandler := &handlers.SuggestionsHandler{Engine: s.services.Suggestions, Logger: s.logger}
	recordsHandler := &handlers.RecordsHandler{
		Engine: s.services.Suggestions,
		Audit:  s.services.Audit,
		Runs:   s.services.Runs,
		Logger: s.logger,
	}

	s.router.HandleFunc("/health", healthHandler.GetHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	// Upload endpoints
	api.HandleFunc("/upload/preview", uploadHandler.Preview).Methods("POST")
	api.HandleFunc("/upload/confirm", uploadHandler.Confirm).Methods("POST")

	// Suggestion queue
	api.HandleFunc("/suggestions", suggestionsHandler.ListSuggestions).Methods("GET")
	api.HandleFunc("/suggestions/count", suggestionsHandler.CountSuggestions).Methods("GET")
	api.HandleFunc("/suggestions/map", suggestionsHandler.GetLocations).Methods("GET")

	// Manual decisions (if enabled)
	if s.config.ManualOverride {
		api.HandleFunc("/suggestions/confirm", suggestionsHandler.Confirm).Methods("POST")
		api.HandleFunc("/suggestions/reject", suggestionsHandler.Reject).Methods("POST")
		api.HandleFunc("/suggestions/undo", suggestionsHandler.Undo).Methods("POST")
	}

	// Records
	api.HandleFunc("/properties/{id:[0-9]+}", recordsHandler.GetProperty).Methods("GET")
	api.HandleFunc("/evictions/{caseID}/history", recordsHandler.GetHistory).Methods("GET")
	api.HandleFunc("/runs/{id}", recordsHandler.GetRun).Methods("GET")

	// Apply middleware. CORS wraps the router so preflight requests are
	// answered before route matching.
	s.router.Use(middleware.RequestLogging(s.logger))
	api.Use(middleware.Actor)
	s.handler = middleware.CORS(s.config.AllowedOrigins)(s.router)
}

// Start serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
