// Package redis_test provides tests for the Redis status store
package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/edumon/acrooms/internal/config"
	"github.com/edumon/acrooms/internal/models"
	"github.com/edumon/acrooms/internal/repository/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Repository, *miniredis.Miniredis, func()) {
	// Create a miniredis server
	mr, err := miniredis.Run()
	require.NoError(t, err)

	cfg := config.RedisConfig{
		Enabled:   true,
		Host:      mr.Host(),
		Port:      mr.Port(),
		KeyPrefix: "test:",
	}

	repo, err := redis.NewRepository(cfg)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		mr.Close()
	}

	return repo, mr, cleanup
}

func testRooms() []models.Room {
	return []models.Room{
		{
			Name: "cs101",
			URL:  "https://canvas.example.edu/cs101",
			Meetings: []models.MeetingTime{
				{Day: "Tue", Time: "13:30"},
			},
		},
		{
			Name: "physics20",
			URL:  "https://canvas.example.edu/physics20",
		},
	}
}

// TestRedisWithURI tests connection with URI format
func TestRedisWithURI(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	uri := fmt.Sprintf("redis://%s:%s", mr.Host(), mr.Port())
	cfg := config.RedisConfig{
		Enabled:   true,
		URI:       uri,
		KeyPrefix: "test:",
	}

	repo, err := redis.NewRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.SeedRooms(ctx, testRooms()))

	state, err := repo.GetRoom(ctx, "cs101")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, state.Status)
}

func TestRoomLifecycle(t *testing.T) {
	repo, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.SeedRooms(ctx, testRooms()))

	t.Run("GetSeededRoom", func(t *testing.T) {
		state, err := repo.GetRoom(ctx, "cs101")
		require.NoError(t, err)
		assert.Equal(t, "cs101", state.Name)
		assert.Equal(t, models.StatusPending, state.Status)
		assert.Len(t, state.Meetings, 1)
	})

	t.Run("ListRooms", func(t *testing.T) {
		states, err := repo.ListRooms(ctx)
		require.NoError(t, err)
		assert.Len(t, states, 2)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		changedAt := time.Now().Truncate(time.Second)
		require.NoError(t, repo.UpdateStatus(ctx, "cs101", models.StatusBlocked, changedAt))

		state, err := repo.GetRoom(ctx, "cs101")
		require.NoError(t, err)
		assert.Equal(t, models.StatusBlocked, state.Status)
		assert.True(t, state.LastChanged.Equal(changedAt))
	})

	t.Run("UnknownRoom", func(t *testing.T) {
		_, err := repo.GetRoom(ctx, "unknown")
		assert.ErrorIs(t, err, redis.ErrNotFound)

		err = repo.UpdateStatus(ctx, "unknown", models.StatusOpen, time.Now())
		assert.ErrorIs(t, err, redis.ErrNotFound)
	})
}
