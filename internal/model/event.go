// Package model defines the wire protocol and domain types for the relay.
package model

import "encoding/json"

// EventType identifies a relay event on the wire.
type EventType string

const (
	// Client -> Server event types
	EventCreateRoom  EventType = "create_room"
	EventJoinRoom    EventType = "join_room"
	EventSendMessage EventType = "send_message"

	// Server -> Client event types
	EventConnectionError EventType = "connection_error"
	EventHostInfo        EventType = "host_info"
	EventRoomCreated     EventType = "room_created"
	EventCreateError     EventType = "create_error"
	EventJoinSuccess     EventType = "join_success"
	EventJoinError       EventType = "join_error"
	EventUserJoined      EventType = "user_joined"
	EventReceiveMessage  EventType = "receive_message"
	EventUserLeft        EventType = "user_left"
)

// Envelope is the JSON frame exchanged over a relay connection in both
// directions. Fields beyond Type are populated per event type.
type Envelope struct {
	Type     EventType       `json:"type"`
	Capacity int             `json:"capacity,omitempty"`
	Pin      string          `json:"pin,omitempty"`
	Message  string          `json:"message,omitempty"`
	UserID   string          `json:"user_id,omitempty"`
	IP       string          `json:"ip,omitempty"`
	Host     string          `json:"host,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}
