// Package server exposes the converter over a JSON HTTP API.
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
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/unitconv/internal/history"
	"github.com/leapstack-labs/unitconv/pkg/units"
)

// Server is the HTTP API server.
type Server struct {
	converter       *units.Converter
	store           history.Store
	record          bool
	defaultQuantity string
	port            int
	logger          *slog.Logger
}

// Config holds configuration for the API server.
type Config struct {
	Converter       *units.Converter
	Store           history.Store // optional
	Record          bool          // record API conversions in Store
	DefaultQuantity string
	Port            int
	Logger          *slog.Logger
}

// NewServer creates a new API server instance.
func NewServer(cfg Config) *Server {
	conv := cfg.Converter
	if conv == nil {
		conv = units.NewConverter(nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	defaultQuantity := cfg.DefaultQuantity
	if defaultQuantity == "" {
		defaultQuantity = units.Length
	}
	return &Server{
		converter:       conv,
		store:           cfg.Store,
		record:          cfg.Record && cfg.Store != nil,
		defaultQuantity: defaultQuantity,
		port:            cfg.Port,
		logger:          logger,
	}
}

// Handler builds the router with middleware and every API route.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelDebug),
			NoColor: true,
		}),
		middleware.Recoverer,
		middleware.Compress(5),
	)

	SetupRoutes(r, NewHandlers(s.converter, s.store, s.record, s.defaultQuantity, s.logger))
	return r
}

// Serve listens on the configured port and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting API server", "addr", ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
