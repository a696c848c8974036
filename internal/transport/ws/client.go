package ws

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"mypad/internal/domain"
)

var (
	// ErrClosed is returned by Send once the client has left the Open state.
	ErrClosed = errors.New("ws: connection closed")
	// ErrSlowPeer is returned by Send when the client's queue is full.
	ErrSlowPeer = errors.New("ws: send queue full")
)

// Client is one WebSocket connection. It implements domain.Peer.
type Client struct {
	id    domain.ConnID
	conn  *websocket.Conn
	opts  Options
	log   zerolog.Logger
	state atomic.Int32

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn, opts Options, log zerolog.Logger) *Client {
	id := domain.ConnID(uuid.NewString())
	c := &Client{
		id:   id,
		conn: conn,
		opts: opts,
		log:  log.With().Str("conn", id.String()).Logger(),
		send: make(chan []byte, opts.SendBuffer),
		done: make(chan struct{}),
	}
	c.state.Store(int32(domain.Connecting))
	return c
}

func (c *Client) ID() domain.ConnID { return c.id }

func (c *Client) State() domain.ConnState { return domain.ConnState(c.state.Load()) }

// Send queues text for the write pump without blocking.
func (c *Client) Send(text []byte) error {
	if c.State() != domain.Open {
		return ErrClosed
	}
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.send <- text:
		return nil
	default:
		return ErrSlowPeer
	}
}

// Close moves the client to Closed and stops its write pump, which sends a
// close frame and releases the socket. Safe to call more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.state.Store(int32(domain.Closed))
		close(c.done)
	})
	return nil
}

func (c *Client) open() { c.state.Store(int32(domain.Open)) }

// readPump relays inbound text frames until the connection fails. It owns
// unregistration.
func (c *Client) readPump(reg domain.Registry) {
	defer func() {
		reg.Unregister(c)
		_ = c.Close()
	}()

	c.conn.SetReadLimit(c.opts.MaxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.opts.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.opts.PongTimeout))
	})

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("read failed")
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		reg.Broadcast(data, c)
	}
}

// writePump drains the send queue and pings. It is the only writer on conn.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Debug().Err(err).Msg("write failed")
				_ = c.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.Close()
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(c.opts.WriteTimeout),
			)
			return
		}
	}
}

// Compile-time assertion that Client implements domain.Peer.
var _ domain.Peer = (*Client)(nil)
