package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/RansilvaV29/backend-chat-websoket/internal/ws"
)

// WebSocketHandler upgrades clients into the relay.
type WebSocketHandler struct {
	server *ws.Server
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(server *ws.Server) *WebSocketHandler {
	return &WebSocketHandler{server: server}
}

// Serve handles GET /ws - upgrades the connection and blocks until the peer
// disconnects.
func (h *WebSocketHandler) Serve(c *gin.Context) {
	if err := h.server.HandleConnection(c.Writer, c.Request); err != nil {
		// Upgrade failure already wrote the HTTP error response.
		return
	}
}
