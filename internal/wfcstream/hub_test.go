package wfcstream

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/overwave-systems/overwave/internal/config"
)

func dialHub(t *testing.T, server *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial(wsURL, header)
}

func TestHubRejectsDisallowedOrigin(t *testing.T) {
	hub := NewHub(config.WebSocketConfig{AllowedOrigins: []string{"https://trusted.example"}})
	server := httptest.NewServer(hub)
	defer server.Close()

	_, resp, err := dialHub(t, server, "https://evil.example")
	if err == nil {
		t.Fatal("expected handshake to fail for disallowed origin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", resp)
	}
}

func TestHubAcceptsAllowedOrigin(t *testing.T) {
	hub := NewHub(config.WebSocketConfig{AllowedOrigins: []string{"https://trusted.example"}})
	server := httptest.NewServer(hub)
	defer server.Close()

	conn, _, err := dialHub(t, server, "https://trusted.example")
	if err != nil {
		t.Fatalf("expected handshake to succeed: %v", err)
	}
	defer conn.Close()

	// Give the hub's accept goroutine time to register the client.
	time.Sleep(50 * time.Millisecond)
	if hub.ClientCount() != 1 {
		t.Fatalf("ClientCount = %d, want 1", hub.ClientCount())
	}
}

func TestHubBroadcastsToConnectedObservers(t *testing.T) {
	hub := NewHub(config.WebSocketConfig{})
	server := httptest.NewServer(hub)
	defer server.Close()

	conn, _, err := dialHub(t, server, "")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast(Event{Type: EventDone, Grid: []string{"..", ".."}})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var evt Event
	if err := conn.ReadJSON(&evt); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if evt.Type != EventDone || len(evt.Grid) != 2 {
		t.Fatalf("got %+v", evt)
	}
}

func TestHubCloseDisconnectsObservers(t *testing.T) {
	hub := NewHub(config.WebSocketConfig{})
	server := httptest.NewServer(hub)
	defer server.Close()

	conn, _, err := dialHub(t, server, "")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	time.Sleep(50 * time.Millisecond)

	hub.Close()
	if hub.ClientCount() != 0 {
		t.Fatalf("ClientCount = %d, want 0 after Close", hub.ClientCount())
	}
}
