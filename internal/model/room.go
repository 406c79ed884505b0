package model

import "time"

// Room is a PIN-keyed broadcast group. Members are kept in join order; the
// order carries no semantics beyond display and logging.
type Room struct {
	Pin      string   `json:"pin"`
	Capacity int      `json:"capacity"`
	Members  []string `json:"members"`
}

// Full reports whether membership has reached capacity.
func (r *Room) Full() bool {
	return len(r.Members) >= r.Capacity
}

// RoomEventKind classifies an entry in the room lifecycle audit log.
type RoomEventKind string

const (
	RoomEventCreated RoomEventKind = "room_created"
	RoomEventJoined  RoomEventKind = "user_joined"
	RoomEventLeft    RoomEventKind = "user_left"
	RoomEventDeleted RoomEventKind = "room_deleted"
)

// RoomEvent is a single audit record of a room lifecycle transition.
// Message payloads are never recorded.
type RoomEvent struct {
	ID        int64         `json:"id"`
	Pin       string        `json:"pin"`
	Kind      RoomEventKind `json:"kind"`
	ConnID    string        `json:"connId,omitempty"`
	Capacity  *int          `json:"capacity,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}
