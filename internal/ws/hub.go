package ws

import "sync"

// Hub is the delivery set for one room, keyed by its PIN. Leaving a hub does
// not close the client: a connection outlives its room membership.
type Hub struct {
	pin     string
	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub creates an empty hub for the given PIN.
func NewHub(pin string) *Hub {
	return &Hub{
		pin:     pin,
		clients: make(map[*Client]bool),
	}
}

// Pin returns the room PIN this hub serves.
func (h *Hub) Pin() string {
	return h.pin
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// Broadcast sends a frame to all clients in the hub.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		client.Send(data)
	}
}

// ClientCount returns the number of clients in the hub.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
