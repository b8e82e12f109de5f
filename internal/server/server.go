package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ternarybob/onetrade/internal/app"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Server serves the stock API and the panel stream.
type Server struct {
	app    *app.App
	server *http.Server
}

// New builds the server from the application's handlers and configuration.
func New(application *app.App) *Server {
	s := &Server{app: application}

	cfg := application.Config.Server
	// No WriteTimeout: panel streams stay open until every panel has loaded.
	s.server = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           s.withMiddleware(s.setupRoutes()),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Run listens until ctx is cancelled, then shuts down gracefully. Open detail
// sessions are closed before in-flight requests are drained so panel streams
// finish promptly.
func (s *Server) Run(ctx context.Context) error {
	listenErr := make(chan error, 1)
	go func() {
		s.app.Logger.Info().Str("address", s.server.Addr).Msg("HTTP server listening")
		listenErr <- s.server.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.app.Logger.Info().Msg("Shutting down HTTP server")
	s.app.DetailService.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.app.Logger.Info().Msg("HTTP server stopped")
	return nil
}
