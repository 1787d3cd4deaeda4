package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/skim/internal/shared"
)

const shutdownTimeout = 10 * time.Second

// Scheduler is a background job started and stopped with the server. Implemented by tasks.Pruner.
type Scheduler interface {
	Start()
	Stop()
}

// Server is the summarization HTTP service.
type Server struct {
	cfg       shared.ServerConfig
	handler   http.Handler
	scheduler Scheduler
	logger    *log.Logger
}

// New wires the router, middleware and handlers. scheduler may be nil.
func New(cfg shared.ServerConfig, engine Engine, scheduler Scheduler, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	router := NewBasicRouter()
	router.Use(
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		RecoverMiddleware(logger),
		RateLimitMiddleware(cfg.RateLimit, cfg.RateBurst),
	)
	router.Handler(WelcomeHandler{})
	router.Handler(NewSummarizeHandler(engine, logger))

	return &Server{
		cfg:       cfg,
		handler:   CORSMiddleware(cfg.AllowedOrigins)(router),
		scheduler: scheduler,
		logger:    logger,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is [Server.Run] on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.scheduler != nil {
		s.scheduler.Start()
		defer s.scheduler.Stop()
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("summarization service listening", "addr", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
