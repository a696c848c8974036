package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"mypad/internal/envelope"
	"mypad/internal/httpapi"
	"mypad/internal/metrics"
	"mypad/internal/session"
	"mypad/internal/transport/ws"
)

// Wire bundles the components built from Config.
type Wire struct {
	Config   Config
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Registry *session.Registry
	Codec    *envelope.Codec
	API      *httpapi.Server
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, version string) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	codec, err := newCodec(cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	reg := session.New(session.WithLogger(logger), session.WithMetrics(m))
	realtime := ws.NewHandler(reg, cfg.WSOptions(), &logger)

	api := httpapi.New(httpapi.Deps{
		Codec:        codec,
		Registry:     reg,
		Realtime:     realtime,
		Metrics:      m,
		Logger:       &logger,
		Version:      version,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	})

	return &Wire{
		Config:   cfg,
		Logger:   logger,
		Metrics:  m,
		Registry: reg,
		Codec:    codec,
		API:      api,
	}, nil
}

// Serve listens on Config.Listen until ctx is cancelled, then shuts down.
func (w *Wire) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", w.Config.Listen)
	if err != nil {
		return err
	}
	return w.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled. Open realtime
// connections are closed during shutdown.
func (w *Wire) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           w.API.Handler(),
		ReadHeaderTimeout: w.Config.HTTP.ReadHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	w.Logger.Info().Str("addr", ln.Addr().String()).Msg("padserver listening")

	select {
	case err := <-errc:
		w.Registry.Close()
		return err
	case <-ctx.Done():
	}

	w.Logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.Config.HTTP.ShutdownTimeout)
	defer cancel()
	// Hijacked WebSocket connections are not tracked by Shutdown.
	w.Registry.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
