// Package relay implements the connection/session and room-lifecycle core:
// address admission, room membership, session bindings and the event
// orchestration that ties them to the transport layer.
package relay

import (
	"sync"
	"time"

	"github.com/RansilvaV29/backend-chat-websoket/internal/model"
)

// Registry enforces a single active connection per client address. Each
// admitted address holds a reservation with a release timer that acts as a
// safety net when a disconnect is never observed.
type Registry struct {
	ttl time.Duration

	mu           sync.Mutex
	reservations map[string]*reservation
}

type reservation struct {
	connID string
	timer  *time.Timer
}

// NewRegistry creates a registry whose reservations expire after ttl unless
// released first.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:          ttl,
		reservations: make(map[string]*reservation),
	}
}

// Admit reserves address for connID. It returns model.ErrAddressActive if an
// unexpired reservation already exists for the address.
func (r *Registry) Admit(address, connID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reservations[address]; ok {
		return model.ErrAddressActive
	}

	res := &reservation{connID: connID}
	res.timer = time.AfterFunc(r.ttl, func() {
		r.Release(address, connID)
	})
	r.reservations[address] = res
	return nil
}

// Release removes the reservation for address iff it still belongs to connID.
// The identity check makes release idempotent and keeps a stale timer from
// evicting a newer connection that legitimately re-admitted the same address.
func (r *Registry) Release(address, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[address]
	if !ok || res.connID != connID {
		return
	}
	res.timer.Stop()
	delete(r.reservations, address)
}

// Reserved reports whether address currently holds a reservation.
func (r *Registry) Reserved(address string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.reservations[address]
	return ok
}
