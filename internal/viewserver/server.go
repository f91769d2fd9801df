// Package viewserver exposes a record index over a small JSON HTTP API for
// browser-side graph renderers.
package viewserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/dusk-indust/horizon/internal/horizon"
)

// Key is the record key type served over HTTP.
type Key = int64

// Server is the HTTP server that exposes a record index.
type Server struct {
	index  *horizon.Index[Key]
	logger *slog.Logger
	http   *http.Server
	addr   net.Addr
}

// NewServer creates a server for the given index. A nil logger discards logs.
func NewServer(index *horizon.Index[Key], logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{index: index, logger: logger}
}

// Handler returns the routed API handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/view/{id}", s.handleView)
	mux.HandleFunc("GET /api/children/{id}", s.handleChildren)
	mux.HandleFunc("GET /api/parent/{id}", s.handleParent)
	mux.HandleFunc("GET /api/count/{id}", s.handleCount)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	return mux
}

// Start binds addr and begins serving in a background goroutine. Bind errors
// are returned; use Addr to learn the port picked for ":0".
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.addr = ln.Addr()

	s.http = &http.Server{
		Handler: s.Handler(),
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("view server stopped", "err", err)
		}
	}()

	s.logger.Info("view server listening", slog.String("addr", s.addr.String()))
	return nil
}

// Addr returns the bound address after Start.
func (s *Server) Addr() net.Addr {
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	if err := s.Start(addr); err != nil {
		return err
	}
	<-ctx.Done()
	s.logger.Info("view server shutting down")
	return s.Stop(context.Background())
}
