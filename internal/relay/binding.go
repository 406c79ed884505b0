package relay

import "sync"

// Bindings maps each connection to the single room it belongs to. Pure
// bookkeeping: transitions are driven exactly once per event by the
// orchestrator's serialized processing.
type Bindings struct {
	mu     sync.RWMutex
	byConn map[string]string
}

// NewBindings creates an empty binding table.
func NewBindings() *Bindings {
	return &Bindings{byConn: make(map[string]string)}
}

// Bind associates connID with pin.
func (b *Bindings) Bind(connID, pin string) {
	b.mu.Lock()
	b.byConn[connID] = pin
	b.mu.Unlock()
}

// Unbind removes connID's association, if any.
func (b *Bindings) Unbind(connID string) {
	b.mu.Lock()
	delete(b.byConn, connID)
	b.mu.Unlock()
}

// RoomOf returns the PIN connID is bound to, or "" if unbound.
func (b *Bindings) RoomOf(connID string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.byConn[connID]
}

// Bound reports whether connID is bound to any room.
func (b *Bindings) Bound(connID string) bool {
	return b.RoomOf(connID) != ""
}
