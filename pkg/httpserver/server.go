package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/ledgerly/ledgerly/pkg/logger"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the lifecycle logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithListener serves on an already bound listener instead of cfg.Addr.
func WithListener(ln net.Listener) Option {
	return func(s *Server) { s.ln = ln }
}

// Server runs an http.Handler until its context is cancelled, then drains
// in-flight requests for at most ShutdownTimeout.
type Server struct {
	cfg Config
	srv *http.Server
	ln  net.Listener
	log *slog.Logger

	mu      sync.Mutex
	running bool
}

// New builds a Server for handler.
func New(cfg Config, handler http.Handler, opts ...Option) *Server {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	s := &Server{
		cfg: cfg,
		log: logger.Discard(),
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks until ctx is done or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	ln := s.ln
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", s.cfg.Addr)
		if err != nil {
			return errors.Join(ErrStart, err)
		}
	}

	s.log.InfoContext(ctx, "http server started", slog.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Join(ErrStart, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.log.ErrorContext(ctx, "http server shutdown failed", logger.Error(err))
		return errors.Join(ErrShutdown, err)
	}
	<-errCh
	s.log.InfoContext(ctx, "http server stopped")
	return nil
}
