package ws

import (
	"testing"
	"time"
)

func newTestClient(id string) *Client {
	return NewClient(id, "10.0.0.1", nil)
}

func recv(t *testing.T, c *Client) (string, bool) {
	t.Helper()
	select {
	case data := <-c.SendChan():
		return string(data), true
	case <-time.After(100 * time.Millisecond):
		return "", false
	}
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub("123456")

	a := newTestClient("conn-a")
	b := newTestClient("conn-b")
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast([]byte("hello"))

	for _, c := range []*Client{a, b} {
		got, ok := recv(t, c)
		if !ok {
			t.Fatalf("client %s received nothing", c.ID())
		}
		if got != "hello" {
			t.Errorf("client %s got %q", c.ID(), got)
		}
	}
}

func TestHub_UnregisterDoesNotCloseClient(t *testing.T) {
	hub := NewHub("123456")
	a := newTestClient("conn-a")
	hub.Register(a)

	hub.Unregister(a)

	if a.IsClosed() {
		t.Error("leaving a room must not close the connection")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("expected empty hub, got %d clients", hub.ClientCount())
	}

	hub.Broadcast([]byte("after"))
	if _, ok := recv(t, a); ok {
		t.Error("unregistered client must not receive broadcasts")
	}
}

func TestClient_SendAfterClose(t *testing.T) {
	c := newTestClient("conn-a")
	c.Close()

	// Must not panic on the closed channel.
	c.Send([]byte("late"))

	if !c.IsClosed() {
		t.Error("client should report closed")
	}
}

func TestClient_FullBufferCloses(t *testing.T) {
	c := newTestClient("conn-a")
	for i := 0; i < 300; i++ {
		c.Send([]byte("x"))
	}
	if !c.IsClosed() {
		t.Error("client with a saturated buffer should be closed, not block")
	}
}
