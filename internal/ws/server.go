package ws

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/RansilvaV29/backend-chat-websoket/internal/model"
	"github.com/RansilvaV29/backend-chat-websoket/internal/relay"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the CORS allowlist once the frontend origins settle
		return true
	},
}

// Server owns all live websocket clients and their per-room hubs. It
// implements relay.Transport so the orchestrator can deliver events without
// touching sockets.
type Server struct {
	log  *slog.Logger
	orch *relay.Orchestrator

	mu    sync.RWMutex
	conns map[string]*Client
	hubs  map[string]*Hub
}

// NewServer creates a websocket server with no orchestrator attached.
func NewServer(log *slog.Logger) *Server {
	return &Server{
		log:   log,
		conns: make(map[string]*Client),
		hubs:  make(map[string]*Hub),
	}
}

// SetOrchestrator attaches the relay core. Must be called before serving.
func (s *Server) SetOrchestrator(o *relay.Orchestrator) {
	s.orch = o
}

// HandleConnection upgrades the HTTP request and runs the connection until
// the peer goes away. The read loop blocks the caller, matching the gorilla
// pump idiom.
func (s *Server) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := NewClient(uuid.New().String(), ClientAddr(r), conn)
	s.addConn(client)

	go s.writePump(client)

	// A rejected connection never gets a read loop: the rejection event and
	// forced close are already queued, so no frame it sends can reach the
	// orchestrator.
	if !s.orch.Connect(client.ID(), client.Addr()) {
		s.removeConn(client.ID())
		return nil
	}

	s.readPump(client)
	return nil
}

// readPump pumps frames from the websocket into the orchestrator.
func (s *Server) readPump(client *Client) {
	defer func() {
		s.orch.Disconnect(client.ID(), client.Addr())
		s.removeConn(client.ID())
		client.Close()
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Debug("ws.read", "conn", client.ID(), "err", err)
			}
			return
		}

		var env model.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.log.Debug("ws.frame.invalid", "conn", client.ID(), "err", err)
			continue
		}

		s.orch.HandleEvent(client.ID(), env)
	}
}

// writePump pumps queued frames to the websocket and keeps the connection
// alive with pings.
func (s *Server) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case data, ok := <-client.SendChan():
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Emit delivers an event to a single connection.
func (s *Server) Emit(connID string, e model.Envelope) {
	s.mu.RLock()
	client := s.conns[connID]
	s.mu.RUnlock()
	if client == nil {
		return
	}

	data, err := json.Marshal(e)
	if err != nil {
		s.log.Error("ws.marshal", "type", e.Type, "err", err)
		return
	}
	client.Send(data)
}

// Broadcast delivers an event to every member of the room's hub.
func (s *Server) Broadcast(pin string, e model.Envelope) {
	s.mu.RLock()
	hub := s.hubs[pin]
	s.mu.RUnlock()
	if hub == nil {
		return
	}

	data, err := json.Marshal(e)
	if err != nil {
		s.log.Error("ws.marshal", "type", e.Type, "err", err)
		return
	}
	hub.Broadcast(data)
}

// JoinGroup adds the connection to the room's hub, creating it if needed.
func (s *Server) JoinGroup(pin, connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := s.conns[connID]
	if client == nil {
		return
	}
	hub := s.hubs[pin]
	if hub == nil {
		hub = NewHub(pin)
		s.hubs[pin] = hub
	}
	hub.Register(client)
}

// LeaveGroup removes the connection from the room's hub. An emptied hub is
// dropped.
func (s *Server) LeaveGroup(pin, connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hub := s.hubs[pin]
	if hub == nil {
		return
	}
	if client := s.conns[connID]; client != nil {
		hub.Unregister(client)
	}
	if hub.ClientCount() == 0 {
		delete(s.hubs, pin)
	}
}

// CloseConn force-closes the transport session for a connection.
func (s *Server) CloseConn(connID string) {
	s.mu.RLock()
	client := s.conns[connID]
	s.mu.RUnlock()
	if client != nil {
		client.Close()
	}
}

// ConnCount returns the number of live connections.
func (s *Server) ConnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conns)
}

func (s *Server) addConn(client *Client) {
	s.mu.Lock()
	s.conns[client.ID()] = client
	s.mu.Unlock()
}

func (s *Server) removeConn(connID string) {
	s.mu.Lock()
	delete(s.conns, connID)
	s.mu.Unlock()
}

// ClientAddr extracts the client's network address: the first X-Forwarded-For
// entry when behind a proxy, otherwise the remote host with any IPv4-mapped
// prefix stripped. Normalized to lower case.
func ClientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return strings.ToLower(first)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	host = strings.TrimPrefix(host, "::ffff:")
	if host == "" {
		return "unknown"
	}
	return strings.ToLower(host)
}
