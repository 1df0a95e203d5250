// Package web pushes room status updates to browsers over server-sent events
package web

import (
	"encoding/json"
	"log"
	"net/http"

	sse "github.com/r3labs/sse/v2"

	"github.com/edumon/acrooms/internal/models"
)

// StreamName is the SSE stream carrying room status updates; clients
// subscribe with GET /events?stream=rooms
const StreamName = "rooms"

// Handler fans room status changes out to subscribed browsers
type Handler struct {
	events *sse.Server
}

// NewHandler creates the SSE handler with its single stream
func NewHandler() *Handler {
	events := sse.New()
	// Subscribers always fetch a fresh snapshot from the API on connect, so
	// replaying missed events would only duplicate state
	events.AutoReplay = false
	events.CreateStream(StreamName)

	return &Handler{events: events}
}

// SetupRoutes registers the SSE endpoint on the given mux
func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/events", h.events.ServeHTTP)
}

// NotifyRoomUpdate publishes one room's new state to all subscribers. It is
// registered as a RoomService update callback.
func (h *Handler) NotifyRoomUpdate(state *models.RoomState) {
	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("Error encoding room update for SSE: %v", err)
		return
	}

	h.events.Publish(StreamName, &sse.Event{
		Event: []byte("update"),
		Data:  data,
	})
}

// Shutdown closes all subscriber connections
func (h *Handler) Shutdown() {
	h.events.Close()
}
