package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"letsgo/internal/shared/logger"

	"github.com/gorilla/websocket"
)

func newTestHub(t *testing.T, configure func(h *Hub)) (*Hub, string) {
	t.Helper()

	auth := func(token string) (string, string, error) {
		if token != "good" {
			return "", "", errors.New("bad token")
		}
		return "dev-1", "WEB", nil
	}
	hub := NewHub(auth, logger.NewNop())
	if configure != nil {
		configure(hub)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url, token string) (*websocket.Conn, map[string]string) {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := conn.WriteJSON(map[string]string{"token": token}); err != nil {
		t.Fatalf("write token: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var reply map[string]string
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read auth reply: %v", err)
	}
	return conn, reply
}

func TestHub_AuthenticatesAndDeliversToDevice(t *testing.T) {
	t.Parallel()

	connected := make(chan string, 1)
	hub, url := newTestHub(t, func(h *Hub) {
		h.SetConnectHandler(func(c *Client) { connected <- c.DeviceID })
	})

	conn, reply := dial(t, url, "good")
	if reply["status"] != "authenticated" || reply["device_id"] != "dev-1" {
		t.Fatalf("unexpected auth reply: %v", reply)
	}

	select {
	case id := <-connected:
		if id != "dev-1" {
			t.Fatalf("connect handler got %q", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("connect handler not called")
	}
	if !hub.IsDeviceConnected("dev-1") || hub.Connected() != 1 {
		t.Fatalf("expected one connected device, got %d", hub.Connected())
	}

	if err := hub.SendTypedMessage("dev-1", "notification", map[string]string{"message": "hi"}); err != nil {
		t.Fatalf("SendTypedMessage: %v", err)
	}

	var msg struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "notification" || msg.Data["message"] != "hi" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestHub_RejectsInvalidToken(t *testing.T) {
	t.Parallel()

	hub, url := newTestHub(t, nil)
	_, reply := dial(t, url, "bad")
	if reply["error"] != "invalid token" {
		t.Fatalf("expected invalid token reply, got %v", reply)
	}
	if hub.Connected() != 0 {
		t.Fatalf("rejected client must not be registered")
	}
}

func TestHub_RoutesIncomingMessages(t *testing.T) {
	t.Parallel()

	got := make(chan string, 1)
	_, url := newTestHub(t, func(h *Hub) {
		h.SetMessageHandler(func(c *Client, msgType string, data json.RawMessage) error {
			got <- msgType + ":" + string(data)
			return nil
		})
	})

	conn, _ := dial(t, url, "good")
	if err := conn.WriteJSON(map[string]any{"type": "signal", "data": "online"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case v := <-got:
		if v != `signal:"online"` {
			t.Fatalf("handler got %q", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("message handler not called")
	}
}

func TestHub_RejectsClientsAfterStop(t *testing.T) {
	t.Parallel()

	auth := func(string) (string, string, error) { return "dev-1", "WEB", nil }
	hub := NewHub(auth, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	_, reply := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"), "good")
	if reply["error"] != "server shutting down" {
		t.Fatalf("expected shutdown reply, got %v", reply)
	}
	if hub.Connected() != 0 || hub.IsDeviceConnected("dev-1") {
		t.Fatalf("stopped hub registered a client")
	}
	if n := hub.SendToDevice("dev-1", []byte(`{}`)); n != 0 {
		t.Fatalf("delivered to %d clients after stop", n)
	}
}
