// Package ws provides the websocket transport: per-connection clients,
// per-room broadcast groups, and the pumps that move frames in and out.
package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents one websocket connection.
type Client struct {
	id   string
	addr string
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

// NewClient wraps a websocket connection.
func NewClient(id, addr string, conn *websocket.Conn) *Client {
	return &Client{
		id:   id,
		addr: addr,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Send queues a frame for delivery. If the buffer is full the client is
// closed rather than blocking the caller.
func (c *Client) Send(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		c.closeLocked()
	}
}

// Close marks the client closed and closes its send channel, which makes the
// write pump finish the connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Client) closeLocked() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// IsClosed returns true if the client is closed.
func (c *Client) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// ID returns the connection identifier.
func (c *Client) ID() string { return c.id }

// Addr returns the client's network address.
func (c *Client) Addr() string { return c.addr }

// SendChan returns the outbound frame channel.
func (c *Client) SendChan() <-chan []byte { return c.send }
