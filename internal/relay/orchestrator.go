package relay

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/RansilvaV29/backend-chat-websoket/internal/hostinfo"
	"github.com/RansilvaV29/backend-chat-websoket/internal/model"
)

const auditTimeout = 3 * time.Second

// Orchestrator is the relay's entry point. The transport layer drives it with
// connect/disconnect and client-submitted events; it mutates the registry,
// directory and binding tables and emits outbound events.
//
// A single mutex serializes all event processing. The only concurrent writer
// is the per-reservation release timer, which the registry resolves with its
// identity check.
type Orchestrator struct {
	log       *slog.Logger
	transport Transport
	registry  *Registry
	rooms     *Directory
	bindings  *Bindings
	audit     Auditor

	// lookupHost resolves an address to a hostname, fire-and-forget.
	lookupHost func(ctx context.Context, addr string) string

	mu       sync.Mutex
	admitted map[string]bool
}

// NewOrchestrator wires the relay core. audit may be nil to disable the
// lifecycle log.
func NewOrchestrator(log *slog.Logger, transport Transport, registry *Registry, rooms *Directory, audit Auditor) *Orchestrator {
	return &Orchestrator{
		log:        log,
		transport:  transport,
		registry:   registry,
		rooms:      rooms,
		bindings:   NewBindings(),
		audit:      audit,
		lookupHost: hostinfo.Lookup,
		admitted:   make(map[string]bool),
	}
}

// Connect admits a new transport connection. On an address conflict it emits
// a rejection event, force-closes the session and returns false; the
// connection never reaches the admitted state.
func (o *Orchestrator) Connect(connID, address string) bool {
	o.mu.Lock()
	err := o.registry.Admit(address, connID)
	if err == nil {
		o.admitted[connID] = true
	}
	o.mu.Unlock()

	if err != nil {
		o.log.Info("conn.rejected", "conn", connID, "addr", address)
		o.transport.Emit(connID, model.Envelope{
			Type:    model.EventConnectionError,
			Message: err.Error(),
		})
		o.transport.CloseConn(connID)
		return false
	}

	o.log.Info("conn.admitted", "conn", connID, "addr", address)

	// Reverse DNS is informational only and must never gate admission.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), hostinfo.LookupTimeout)
		defer cancel()
		host := o.lookupHost(ctx, address)
		o.transport.Emit(connID, model.Envelope{
			Type: model.EventHostInfo,
			IP:   address,
			Host: host,
		})
	}()

	return true
}

// HandleEvent processes one client-submitted event. Events from connections
// that were never admitted (or already disconnected) are dropped: a rejected
// connection goes straight to disconnected and must not reach any room state.
func (o *Orchestrator) HandleEvent(connID string, env model.Envelope) {
	o.mu.Lock()
	ok := o.admitted[connID]
	o.mu.Unlock()
	if !ok {
		o.log.Debug("event.unadmitted", "conn", connID, "type", env.Type)
		return
	}

	switch env.Type {
	case model.EventCreateRoom:
		o.handleCreate(connID, env.Capacity)
	case model.EventJoinRoom:
		o.handleJoin(connID, env.Pin)
	case model.EventSendMessage:
		o.handleMessage(connID, env)
	default:
		o.log.Debug("event.unknown", "conn", connID, "type", env.Type)
	}
}

func (o *Orchestrator) handleCreate(connID string, capacity int) {
	o.mu.Lock()
	var pin string
	err := model.ErrAlreadyInRoom
	if !o.bindings.Bound(connID) {
		pin, err = o.rooms.Create(capacity, connID)
	}
	if err == nil {
		o.bindings.Bind(connID, pin)
	}
	o.mu.Unlock()

	if err != nil {
		o.transport.Emit(connID, model.Envelope{
			Type:    model.EventCreateError,
			Message: err.Error(),
		})
		return
	}

	o.log.Info("room.created", "pin", pin, "capacity", capacity, "conn", connID)
	o.transport.JoinGroup(pin, connID)
	o.transport.Emit(connID, model.Envelope{Type: model.EventRoomCreated, Pin: pin})
	o.transport.Broadcast(pin, model.Envelope{Type: model.EventUserJoined, UserID: connID})
	o.record(model.RoomEvent{Pin: pin, Kind: model.RoomEventCreated, ConnID: connID, Capacity: &capacity})
}

func (o *Orchestrator) handleJoin(connID, pin string) {
	o.mu.Lock()
	err := o.rooms.Join(pin, connID, o.bindings.Bound(connID))
	if err == nil {
		o.bindings.Bind(connID, pin)
	}
	o.mu.Unlock()

	if err != nil {
		o.transport.Emit(connID, model.Envelope{
			Type:    model.EventJoinError,
			Message: err.Error(),
		})
		return
	}

	o.log.Info("room.joined", "pin", pin, "conn", connID)
	o.transport.JoinGroup(pin, connID)
	o.transport.Emit(connID, model.Envelope{Type: model.EventJoinSuccess})
	o.transport.Broadcast(pin, model.Envelope{Type: model.EventUserJoined, UserID: connID})
	o.record(model.RoomEvent{Pin: pin, Kind: model.RoomEventJoined, ConnID: connID})
}

// handleMessage relays the payload verbatim to the sender's room, including
// the sender. An unbound sender is a silent no-op.
func (o *Orchestrator) handleMessage(connID string, env model.Envelope) {
	pin := o.bindings.RoomOf(connID)
	if pin == "" {
		o.log.Debug("message.dropped", "conn", connID)
		return
	}
	o.transport.Broadcast(pin, model.Envelope{
		Type:    model.EventReceiveMessage,
		Payload: env.Payload,
	})
}

// Disconnect unwinds all state for a departed connection: session binding,
// room membership (deleting the room if it became empty), and the address
// reservation with its timer. Safe to call more than once.
func (o *Orchestrator) Disconnect(connID, address string) {
	o.mu.Lock()
	delete(o.admitted, connID)
	pin := o.bindings.RoomOf(connID)
	var wasMember, deleted bool
	if pin != "" {
		o.bindings.Unbind(connID)
		wasMember, deleted = o.rooms.Leave(pin, connID)
	}
	o.registry.Release(address, connID)
	o.mu.Unlock()

	if pin == "" {
		return
	}

	o.transport.LeaveGroup(pin, connID)
	if wasMember {
		o.log.Info("room.left", "pin", pin, "conn", connID, "deleted", deleted)
		o.record(model.RoomEvent{Pin: pin, Kind: model.RoomEventLeft, ConnID: connID})
		if deleted {
			o.record(model.RoomEvent{Pin: pin, Kind: model.RoomEventDeleted})
		} else {
			o.transport.Broadcast(pin, model.Envelope{Type: model.EventUserLeft, UserID: connID})
		}
	}
}

func (o *Orchestrator) record(ev model.RoomEvent) {
	if o.audit == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()
	if err := o.audit.Record(ctx, ev); err != nil {
		o.log.Error("audit.record", "pin", ev.Pin, "kind", ev.Kind, "err", err)
	}
}
