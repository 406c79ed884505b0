package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RansilvaV29/backend-chat-websoket/internal/model"
	"github.com/RansilvaV29/backend-chat-websoket/internal/relay"
	"github.com/RansilvaV29/backend-chat-websoket/internal/repository"
)

// RoomHandler serves read-only views of live rooms and their audit trail.
type RoomHandler struct {
	rooms *relay.Directory
	repo  *repository.RoomEventRepository
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(rooms *relay.Directory, repo *repository.RoomEventRepository) *RoomHandler {
	return &RoomHandler{rooms: rooms, repo: repo}
}

// RoomResponse represents a live room in API responses.
type RoomResponse struct {
	Pin      string `json:"pin"`
	Capacity int    `json:"capacity"`
	Members  int    `json:"members"`
}

// RoomEventResponse represents an audit entry in API responses.
type RoomEventResponse struct {
	Kind      string `json:"kind"`
	ConnID    string `json:"connId,omitempty"`
	Capacity  *int   `json:"capacity,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// List handles GET /api/rooms - lists all live rooms.
func (h *RoomHandler) List(c *gin.Context) {
	rooms := h.rooms.List()
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Pin < rooms[j].Pin })

	out := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomResponse(room))
	}
	c.JSON(http.StatusOK, gin.H{"rooms": out})
}

// Get handles GET /api/rooms/:pin - returns a single live room.
func (h *RoomHandler) Get(c *gin.Context) {
	pin := c.Param("pin")
	room, ok := h.rooms.Get(pin)
	if !ok {
		sendError(c, http.StatusNotFound, "ROOM_NOT_FOUND", "No room with pin "+pin)
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(room))
}

// Events handles GET /api/rooms/:pin/events - returns the audit trail for a
// pin, including rooms that no longer exist.
func (h *RoomHandler) Events(c *gin.Context) {
	pin := c.Param("pin")
	events, err := h.repo.ListByPin(c.Request.Context(), pin)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list events: "+err.Error())
		return
	}

	out := make([]RoomEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, RoomEventResponse{
			Kind:      string(ev.Kind),
			ConnID:    ev.ConnID,
			Capacity:  ev.Capacity,
			CreatedAt: ev.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"pin": pin, "events": out})
}

// RegisterRoutes registers the room routes on a Gin router group.
func (h *RoomHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.List)
	rg.GET("/rooms/:pin", h.Get)
	rg.GET("/rooms/:pin/events", h.Events)
}

func toRoomResponse(room model.Room) RoomResponse {
	return RoomResponse{
		Pin:      room.Pin,
		Capacity: room.Capacity,
		Members:  len(room.Members),
	}
}
