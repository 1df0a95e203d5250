package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/edumon/acrooms/internal/models"
	"github.com/edumon/acrooms/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRooms(t *testing.T, repo *memory.Repository) {
	t.Helper()

	rooms := []models.Room{
		{
			Name: "cs101",
			URL:  "https://canvas.example.edu/cs101",
			Meetings: []models.MeetingTime{
				{Day: "Mon", Time: "10:00"},
				{Day: "Wed", Time: "10:00"},
			},
		},
		{
			Name: "math51",
			URL:  "https://canvas.example.edu/math51",
		},
	}

	require.NoError(t, repo.SeedRooms(context.Background(), rooms))
}

func TestSeedAndGetRoom(t *testing.T) {
	repo := memory.NewRepository()
	seedRooms(t, repo)
	ctx := context.Background()

	state, err := repo.GetRoom(ctx, "cs101")
	require.NoError(t, err)
	assert.Equal(t, "cs101", state.Name)
	assert.Equal(t, models.StatusPending, state.Status)
	assert.Len(t, state.Meetings, 2)
	assert.False(t, state.LastChanged.IsZero())

	_, err = repo.GetRoom(ctx, "unknown")
	assert.ErrorIs(t, err, memory.ErrNotFound)
}

func TestListRooms(t *testing.T) {
	repo := memory.NewRepository()
	seedRooms(t, repo)

	states, err := repo.ListRooms(context.Background())
	require.NoError(t, err)
	assert.Len(t, states, 2)
}

func TestUpdateStatus(t *testing.T) {
	repo := memory.NewRepository()
	seedRooms(t, repo)
	ctx := context.Background()

	changedAt := time.Now()
	require.NoError(t, repo.UpdateStatus(ctx, "cs101", models.StatusOpen, changedAt))

	state, err := repo.GetRoom(ctx, "cs101")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, state.Status)
	assert.WithinDuration(t, changedAt, state.LastChanged, time.Millisecond)

	// Other rooms are untouched
	other, err := repo.GetRoom(ctx, "math51")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, other.Status)

	err = repo.UpdateStatus(ctx, "unknown", models.StatusOpen, changedAt)
	assert.ErrorIs(t, err, memory.ErrNotFound)
}

// TestConcurrentReadsDuringWrites exercises the single-writer/many-readers
// contract: snapshots must always pair a status with its own timestamp.
func TestConcurrentReadsDuringWrites(t *testing.T) {
	repo := memory.NewRepository()
	seedRooms(t, repo)
	ctx := context.Background()

	timestamps := map[models.Status]time.Time{
		models.StatusOpen:   time.Unix(1000, 0),
		models.StatusClosed: time.Unix(2000, 0),
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		statuses := []models.Status{models.StatusOpen, models.StatusClosed}
		for i := 0; i < 500; i++ {
			status := statuses[i%2]
			_ = repo.UpdateStatus(ctx, "cs101", status, timestamps[status])
		}
		close(stop)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}

			state, err := repo.GetRoom(ctx, "cs101")
			if err != nil {
				continue
			}
			if state.Status == models.StatusPending {
				continue
			}
			// A torn read would pair one status with the other's timestamp
			assert.Equal(t, timestamps[state.Status], state.LastChanged)
		}
	}()

	wg.Wait()
}
