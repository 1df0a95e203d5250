// Package redis provides a Redis/Valkey implementation of the status store
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/edumon/acrooms/internal/config"
	"github.com/edumon/acrooms/internal/models"
	"github.com/redis/go-redis/v9"
)

// Common errors
var (
	ErrNotFound = errors.New("room not found")
)

// roomState is the internal model for storing a room's record in Redis.
// Only the current state is kept per room; no history is persisted.
type roomState struct {
	Name        string
	URL         string
	Meetings    []models.MeetingTime
	Status      models.Status
	LastChanged time.Time
}

// Repository implements the status store with Redis storage
type Repository struct {
	client    *redis.Client
	keyPrefix string
}

// NewRepository creates a new Redis status store
func NewRepository(cfg config.RedisConfig) (*Repository, error) {
	var client *redis.Client

	// Use URI if provided, otherwise build connection from individual parameters
	if cfg.URI != "" {
		opt, err := redis.ParseURL(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URI: %w", err)
		}

		if opt.DB == 0 {
			opt.DB = cfg.DB
		}

		if opt.Password == "" && cfg.Password != "" {
			opt.Password = cfg.Password
		}

		client = redis.NewClient(opt)
	} else {
		address := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)

		client = redis.NewClient(&redis.Options{
			Addr:     address,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Repository{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// Close closes the Redis connection
func (r *Repository) Close() error {
	return r.client.Close()
}

// roomKey returns the Redis key for a room
func (r *Repository) roomKey(name string) string {
	return fmt.Sprintf("%srooms:%s", r.keyPrefix, name)
}

// save writes one room state under its key
func (r *Repository) save(ctx context.Context, state roomState) error {
	data, err := json.Marshal(&state)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	// Room records live for the process lifetime, so no TTL
	if err := r.client.Set(ctx, r.roomKey(state.Name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}

	return nil
}

// load reads one room state by key
func (r *Repository) load(ctx context.Context, name string) (roomState, error) {
	data, err := r.client.Get(ctx, r.roomKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return roomState{}, ErrNotFound
		}
		return roomState{}, fmt.Errorf("failed to get room: %w", err)
	}

	var state roomState
	if err := json.Unmarshal(data, &state); err != nil {
		return roomState{}, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return state, nil
}

// SeedRooms registers the configured rooms with Pending status
func (r *Repository) SeedRooms(ctx context.Context, rooms []models.Room) error {
	now := time.Now()
	for _, room := range rooms {
		state := roomState{
			Name:        room.Name,
			URL:         room.URL,
			Meetings:    room.Meetings,
			Status:      models.StatusPending,
			LastChanged: now,
		}
		if err := r.save(ctx, state); err != nil {
			return err
		}
	}

	return nil
}

// GetRoom retrieves a room snapshot by name
func (r *Repository) GetRoom(ctx context.Context, name string) (*models.RoomState, error) {
	state, err := r.load(ctx, name)
	if err != nil {
		return nil, err
	}

	return &models.RoomState{
		Name:        state.Name,
		URL:         state.URL,
		Meetings:    state.Meetings,
		Status:      state.Status,
		LastChanged: state.LastChanged,
	}, nil
}

// ListRooms returns snapshots of every room
func (r *Repository) ListRooms(ctx context.Context) ([]*models.RoomState, error) {
	pattern := r.roomKey("*")
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	if len(keys) == 0 {
		return []*models.RoomState{}, nil
	}

	// Use MGET to retrieve all room data in a single roundtrip
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get room data: %w", err)
	}

	states := make([]*models.RoomState, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}

		strData, ok := v.(string)
		if !ok {
			continue
		}

		var state roomState
		if err := json.Unmarshal([]byte(strData), &state); err != nil {
			continue
		}

		states = append(states, &models.RoomState{
			Name:        state.Name,
			URL:         state.URL,
			Meetings:    state.Meetings,
			Status:      state.Status,
			LastChanged: state.LastChanged,
		})
	}

	return states, nil
}

// UpdateStatus replaces a room's status and timestamp as a single pair.
// The room's supervisor is the only writer for its key, so read-modify-write
// needs no cross-process coordination.
func (r *Repository) UpdateStatus(ctx context.Context, name string, status models.Status, changedAt time.Time) error {
	state, err := r.load(ctx, name)
	if err != nil {
		return err
	}

	state.Status = status
	state.LastChanged = changedAt

	return r.save(ctx, state)
}
