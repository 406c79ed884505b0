package relay

import (
	"context"

	"github.com/RansilvaV29/backend-chat-websoket/internal/model"
)

// Transport is the message-delivery substrate the orchestrator drives. Group
// delivery is addressed by room PIN; the core never iterates individual
// connections itself.
type Transport interface {
	// Emit delivers an event to a single connection.
	Emit(connID string, e model.Envelope)

	// Broadcast delivers an event to every member of the group.
	Broadcast(pin string, e model.Envelope)

	// JoinGroup adds the connection to the group's delivery set.
	JoinGroup(pin, connID string)

	// LeaveGroup removes the connection from the group's delivery set.
	LeaveGroup(pin, connID string)

	// CloseConn force-closes the transport session for a connection.
	CloseConn(connID string)
}

// Auditor records room lifecycle transitions. Recording is best-effort;
// failures never reach clients.
type Auditor interface {
	Record(ctx context.Context, ev model.RoomEvent) error
}
