package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mypad/internal/domain"
)

// Handler upgrades HTTP requests to realtime connections.
type Handler struct {
	reg      domain.Registry
	opts     Options
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewHandler returns a Handler registering clients with reg. A zero logger
// falls back to the global zerolog logger.
func NewHandler(reg domain.Registry, opts Options, logger *zerolog.Logger) *Handler {
	opts = opts.withDefaults()
	l := log.Logger
	if logger != nil {
		l = *logger
	}
	h := &Handler{
		reg:  reg,
		opts: opts,
		log:  l.With().Str("component", "ws").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	if opts.AllowAnyOrigin {
		h.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}
	return h
}

// ServeHTTP performs the handshake and blocks until the connection ends.
// A failed handshake leaves the registry untouched.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response.
		h.log.Debug().Err(err).Str("remote", r.RemoteAddr).Msg("handshake failed")
		return
	}

	c := newClient(conn, h.opts, h.log)
	c.open()
	h.reg.Register(c)
	c.log.Info().Str("remote", r.RemoteAddr).Msg("client connected")

	go c.writePump()
	c.readPump(h.reg)

	c.log.Info().Msg("client disconnected")
}
