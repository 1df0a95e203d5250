// Package service provides the business logic between supervisors, the
// status store, and the read-side consumers
package service

import (
	"context"
	"log"
	"time"

	"github.com/edumon/acrooms/internal/models"
	"github.com/edumon/acrooms/internal/repository"
)

// RoomUpdateCallback is a function type for room status update callbacks
type RoomUpdateCallback func(*models.RoomState)

// RoomService applies inbound commands to room records and fans status
// changes out to registered listeners (the SSE layer, tests).
type RoomService struct {
	repo            repository.Repository
	updateCallbacks []RoomUpdateCallback
}

// NewRoomService creates a new RoomService with the given status store
func NewRoomService(repo repository.Repository) *RoomService {
	return &RoomService{
		repo:            repo,
		updateCallbacks: make([]RoomUpdateCallback, 0),
	}
}

// RegisterUpdateCallback registers a callback to be invoked whenever a
// room's status changes. Callbacks must be registered before supervisors
// start; registration is not synchronized.
func (s *RoomService) RegisterUpdateCallback(callback RoomUpdateCallback) {
	s.updateCallbacks = append(s.updateCallbacks, callback)
}

// notifyUpdate calls all registered callbacks with the updated room state
func (s *RoomService) notifyUpdate(state *models.RoomState) {
	for _, callback := range s.updateCallbacks {
		callback(state)
	}
}

// ApplyCommand runs the status machine for one inbound command and persists
// the outcome. The transition is computed from the calling session's own
// current status, not the stored record: each fresh session starts from
// Pending and may legitimately contradict a previously settled record. The
// stored record and its last-changed timestamp only move when the computed
// status differs from what is already recorded, so absorbed and no-op
// commands leave the record untouched.
func (s *RoomService) ApplyCommand(ctx context.Context, name string, current models.Status, command string) (models.Status, error) {
	next := current.Transition(command)

	state, err := s.repo.GetRoom(ctx, name)
	if err != nil {
		return current, err
	}

	if next == state.Status {
		return next, nil
	}

	changedAt := time.Now()
	if err := s.repo.UpdateStatus(ctx, name, next, changedAt); err != nil {
		return current, err
	}

	log.Printf("Room %s changed status: %s -> %s", name, state.Status, next)

	state.Status = next
	state.LastChanged = changedAt
	s.notifyUpdate(state)

	return next, nil
}

// GetRoom returns a consistent snapshot of one room
func (s *RoomService) GetRoom(ctx context.Context, name string) (*models.RoomState, error) {
	return s.repo.GetRoom(ctx, name)
}

// ListRooms returns consistent snapshots of every room
func (s *RoomService) ListRooms(ctx context.Context) ([]*models.RoomState, error) {
	return s.repo.ListRooms(ctx)
}
