// Package repository defines the status store interface and selects an
// implementation at startup
package repository

import (
	"context"
	"time"

	"github.com/edumon/acrooms/internal/config"
	"github.com/edumon/acrooms/internal/models"
)

// Repository is the status store: the full set of room records, looked up
// by name. It is seeded once at startup and never resized afterward; status
// writes come only from each room's supervisor, reads come from the API
// layer concurrently.
type Repository interface {
	// SeedRooms registers the configured rooms with Pending status.
	// Called exactly once, before any supervisor starts.
	SeedRooms(ctx context.Context, rooms []models.Room) error

	// GetRoom returns a consistent snapshot of one room
	GetRoom(ctx context.Context, name string) (*models.RoomState, error)

	// ListRooms returns consistent snapshots of every room
	ListRooms(ctx context.Context) ([]*models.RoomState, error)

	// UpdateStatus atomically replaces a room's status and last-changed
	// timestamp as a pair
	UpdateStatus(ctx context.Context, name string, status models.Status, changedAt time.Time) error
}

// Constructor hooks registered by the factory to avoid an import cycle
// between this package and the implementations
var (
	newRedisRepository  func(cfg config.RedisConfig) (Repository, error)
	newMemoryRepository func() Repository
)

// NewRepository creates the configured repository implementation: Redis
// when enabled, otherwise the in-memory store.
func NewRepository(cfg config.RedisConfig) (Repository, error) {
	if cfg.Enabled {
		return newRedisRepository(cfg)
	}
	return newMemoryRepository(), nil
}
