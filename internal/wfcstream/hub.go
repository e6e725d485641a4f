package wfcstream

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/overwave-systems/overwave/internal/config"
	"github.com/overwave-systems/overwave/internal/logger"
)

// ErrHubClosed is returned by operations attempted after Close.
var ErrHubClosed = errors.New("wfcstream: hub is closed")

// Hub accepts WebSocket observers and fans solve events out to all of
// them. Observers are read-only: Hub never routes anything they send back
// into the solve.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]struct{}
	upgrader websocket.Upgrader
	origins  config.WebSocketConfig
	closed   bool
}

// NewHub creates a Hub that enforces origins per cfg (see
// WebSocketConfig.IsOriginAllowed).
func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		origins: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Origin is checked explicitly in ServeHTTP against the
			// configured policy, so the upgrader itself allows everything.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request to a WebSocket observer connection,
// rejecting it if its Origin header fails the configured policy.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.origins.IsOriginAllowed(r.Header.Get("Origin"), r.Host) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("wfcstream: upgrade failed: %v", err)
		return
	}

	client := NewClient(conn)
	if err := h.add(client); err != nil {
		client.Close()
		return
	}

	go func() {
		defer h.remove(client)
		client.drain()
	}()
}

func (h *Hub) add(c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHubClosed
	}
	h.clients[c] = struct{}{}
	return nil
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.Close()
	}
}

// Broadcast pushes evt to every connected observer, dropping any that
// error on write.
func (h *Hub) Broadcast(evt Event) {
	h.mu.RLock()
	stale := make([]*Client, 0)
	for c := range h.clients {
		if err := c.WriteEvent(evt); err != nil {
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.remove(c)
	}
}

// ClientCount returns the number of currently connected observers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every observer and rejects future connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.Close()
		delete(h.clients, c)
	}
	h.closed = true
}
