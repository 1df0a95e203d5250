// Package memory provides the in-memory implementation of the status store
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/edumon/acrooms/internal/models"
)

// ErrNotFound is returned when a requested room is not in the store
var ErrNotFound = errors.New("room not found")

// roomEntry holds one room's static metadata and its mutable status fields.
// Each entry carries its own lock: the map itself is never mutated after
// seeding, so lookups need no synchronization, and one room's writer never
// contends with another room's readers.
type roomEntry struct {
	room models.Room

	mu          sync.RWMutex
	status      models.Status
	lastChanged time.Time
}

// snapshot copies the mutable pair under the read lock so callers never see
// a new status with an old timestamp or vice versa
func (e *roomEntry) snapshot() *models.RoomState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return &models.RoomState{
		Name:        e.room.Name,
		URL:         e.room.URL,
		Meetings:    e.room.Meetings,
		Status:      e.status,
		LastChanged: e.lastChanged,
	}
}

// Repository implements the status store with in-process storage
type Repository struct {
	mu    sync.RWMutex
	rooms map[string]*roomEntry
}

// NewRepository creates a new in-memory status store
func NewRepository() *Repository {
	return &Repository{
		rooms: make(map[string]*roomEntry),
	}
}

// SeedRooms registers the configured rooms with Pending status
func (r *Repository) SeedRooms(ctx context.Context, rooms []models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, room := range rooms {
		r.rooms[room.Name] = &roomEntry{
			room:        room,
			status:      models.StatusPending,
			lastChanged: now,
		}
	}

	return nil
}

// GetRoom returns a consistent snapshot of one room
func (r *Repository) GetRoom(ctx context.Context, name string) (*models.RoomState, error) {
	r.mu.RLock()
	entry, ok := r.rooms[name]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	return entry.snapshot(), nil
}

// ListRooms returns consistent snapshots of every room
func (r *Repository) ListRooms(ctx context.Context) ([]*models.RoomState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := make([]*models.RoomState, 0, len(r.rooms))
	for _, entry := range r.rooms {
		states = append(states, entry.snapshot())
	}

	return states, nil
}

// UpdateStatus replaces a room's status and timestamp as a single pair
func (r *Repository) UpdateStatus(ctx context.Context, name string, status models.Status, changedAt time.Time) error {
	r.mu.RLock()
	entry, ok := r.rooms[name]
	r.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}

	entry.mu.Lock()
	entry.status = status
	entry.lastChanged = changedAt
	entry.mu.Unlock()

	return nil
}
