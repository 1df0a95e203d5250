package api

import (
	"net/http"

	"github.com/edumon/acrooms/internal/repository"
)

// SetupRoutes configures the HTTP routes for the API
func SetupRoutes(repo repository.Repository) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check endpoints for Kubernetes
	mux.HandleFunc("/health/live", HealthLiveHandler)
	mux.HandleFunc("/health/ready", HealthReadyHandler)

	// Room status endpoints
	roomHandler := NewRoomHandler(repo)
	mux.Handle("/api/v1/all", roomHandler)
	mux.Handle("/api/v1/room/", roomHandler)

	return mux
}
