package relay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("relay: client closed")

// Client is a realtime connection to padserver. Send and Receive may be used
// from different goroutines; concurrent Sends are serialised.
type Client struct {
	URL  string
	conn *websocket.Conn

	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    chan struct{}
}

// Dial opens the realtime channel at url (ws:// or wss://).
func Dial(ctx context.Context, url string, header http.Header) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("relay dial %s: %s: %w", url, resp.Status, err)
		}
		return nil, fmt.Errorf("relay dial %s: %w", url, err)
	}
	return &Client{URL: url, conn: conn, closed: make(chan struct{})}, nil
}

// Send writes one text frame.
func (c *Client) Send(ctx context.Context, text string) error {
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(10 * time.Second)
	}
	_ = c.conn.SetWriteDeadline(deadline)
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("relay send: %w", err)
	}
	return nil
}

// Receive blocks for the next text frame. Cancelling ctx closes the client,
// since a gorilla connection cannot resume after an interrupted read.
func (c *Client) Receive(ctx context.Context) (string, error) {
	stop := context.AfterFunc(ctx, func() { _ = c.Close() })
	defer stop()

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			select {
			case <-c.closed:
				return "", ErrClosed
			default:
			}
			return "", fmt.Errorf("relay receive: %w", err)
		}
		if kind == websocket.TextMessage {
			return string(data), nil
		}
	}
}

// Close sends a normal close frame and releases the socket.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		err = c.conn.Close()
	})
	return err
}
