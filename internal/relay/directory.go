package relay

import (
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/RansilvaV29/backend-chat-websoket/internal/model"
)

const (
	pinMin  = 100000
	pinSpan = 900000

	// maxPinAttempts bounds the rejection sampling loop. With a sparse key
	// space the expected number of attempts is ~1.
	maxPinAttempts = 1000
)

// Directory owns room creation, PIN allocation, membership and destruction.
// A room exists iff it has at least one member.
type Directory struct {
	mu    sync.RWMutex
	rooms map[string]*model.Room
}

// NewDirectory creates an empty room directory.
func NewDirectory() *Directory {
	return &Directory{rooms: make(map[string]*model.Room)}
}

// Create allocates a fresh PIN and creates a room with connID as its sole
// member. Capacity must be positive.
func (d *Directory) Create(capacity int, connID string) (string, error) {
	if capacity <= 0 {
		return "", model.ErrInvalidCapacity
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	pin, err := d.newPin()
	if err != nil {
		return "", err
	}
	d.rooms[pin] = &model.Room{
		Pin:      pin,
		Capacity: capacity,
		Members:  []string{connID},
	}
	return pin, nil
}

// Join appends connID to the room's membership. Error precedence follows the
// protocol: unknown PIN, then full room, then an existing binding elsewhere
// (alreadyBound is the caller's view of the session binding table).
func (d *Directory) Join(pin, connID string, alreadyBound bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.rooms[pin]
	if !ok {
		return model.ErrInvalidPin
	}
	if room.Full() {
		return model.ErrRoomFull
	}
	if alreadyBound {
		return model.ErrAlreadyInRoom
	}
	room.Members = append(room.Members, connID)
	return nil
}

// Leave removes connID from the room's membership. It reports whether the
// connection was a member and whether the room was deleted because it became
// empty. Calling Leave for a non-member or unknown PIN is a no-op.
func (d *Directory) Leave(pin, connID string) (wasMember, deleted bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.rooms[pin]
	if !ok {
		return false, false
	}
	for i, id := range room.Members {
		if id == connID {
			room.Members = append(room.Members[:i], room.Members[i+1:]...)
			wasMember = true
			break
		}
	}
	if wasMember && len(room.Members) == 0 {
		delete(d.rooms, pin)
		deleted = true
	}
	return wasMember, deleted
}

// Get returns a snapshot of the room for the given PIN.
func (d *Directory) Get(pin string) (model.Room, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	room, ok := d.rooms[pin]
	if !ok {
		return model.Room{}, false
	}
	return snapshot(room), true
}

// List returns snapshots of all live rooms.
func (d *Directory) List() []model.Room {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]model.Room, 0, len(d.rooms))
	for _, room := range d.rooms {
		out = append(out, snapshot(room))
	}
	return out
}

// newPin rejection-samples a 6-digit PIN unique among live rooms.
// Caller holds d.mu.
func (d *Directory) newPin() (string, error) {
	for i := 0; i < maxPinAttempts; i++ {
		pin := strconv.Itoa(pinMin + rand.IntN(pinSpan))
		if _, taken := d.rooms[pin]; !taken {
			return pin, nil
		}
	}
	return "", model.ErrPinSpaceExhausted
}

func snapshot(room *model.Room) model.Room {
	members := make([]string, len(room.Members))
	copy(members, room.Members)
	return model.Room{Pin: room.Pin, Capacity: room.Capacity, Members: members}
}
