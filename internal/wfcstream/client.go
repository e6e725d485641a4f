package wfcstream

import (
	"sync"

	"github.com/gorilla/websocket"
)

// MaxClientMessageSize bounds inbound messages from a connected observer.
// Observers are read-only: nothing ever reads commands back from them, so
// this just keeps an idle connection from growing memory unbounded.
const MaxClientMessageSize = 1024

// Client wraps a WebSocket connection to a single streaming observer.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewClient wraps conn as a streaming Client.
func NewClient(conn *websocket.Conn) *Client {
	conn.SetReadLimit(MaxClientMessageSize)
	return &Client{conn: conn}
}

// WriteEvent pushes evt to the observer as JSON.
func (c *Client) WriteEvent(evt Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(evt)
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the observer's remote address.
func (c *Client) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// drain discards anything the observer sends, since the protocol is
// one-directional. It returns once the connection closes or errors, which
// is the signal for the caller to clean the client up.
func (c *Client) drain() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
