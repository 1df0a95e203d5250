package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/edumon/acrooms/internal/models"
	"github.com/edumon/acrooms/internal/repository"
	"github.com/edumon/acrooms/internal/utils"
)

// RoomHandler handles HTTP requests for room status snapshots
type RoomHandler struct {
	repo repository.Repository
}

// NewRoomHandler creates a new room handler with the given status store
func NewRoomHandler(repo repository.Repository) *RoomHandler {
	return &RoomHandler{
		repo: repo,
	}
}

// allRoomsResponse is the body of GET /api/v1/all
type allRoomsResponse struct {
	Rooms []*models.RoomState `json:"rooms"`
}

// roomResponse is the body of GET /api/v1/room/{name}
type roomResponse struct {
	Error string            `json:"error"`
	Room  *models.RoomState `json:"room,omitempty"`
}

// ServeHTTP routes room API requests
func (h *RoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path formats: /api/v1/all and /api/v1/room/{name}
	pathParts := strings.Split(r.URL.Path, "/")

	switch {
	case r.URL.Path == "/api/v1/all":
		h.listRooms(w, r)
	case len(pathParts) >= 5 && pathParts[3] == "room" && pathParts[4] != "":
		h.getRoom(w, r, pathParts[4])
	default:
		http.NotFound(w, r)
	}
}

// listRooms handles GET /api/v1/all
func (h *RoomHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	states, err := h.repo.ListRooms(r.Context())
	if err != nil {
		log.Printf("Error listing rooms: %v", err)
		http.Error(w, "Error retrieving rooms", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(allRoomsResponse{Rooms: states})
}

// getRoom handles GET /api/v1/room/{name}
func (h *RoomHandler) getRoom(w http.ResponseWriter, r *http.Request, name string) {
	state, err := h.repo.GetRoom(r.Context(), name)
	if err != nil {
		log.Printf("Room %s not found: %v", utils.SanitizeLogString(name), err)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(roomResponse{Error: "room not found"})
		return
	}

	json.NewEncoder(w).Encode(roomResponse{Error: "none", Room: state})
}
