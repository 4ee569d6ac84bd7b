package service

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coworking/internal/db"
	"coworking/internal/logger"
)

func TestJobService_RunAll(t *testing.T) {
	repo := &fakeJobRepo{finished: []int{1, 2}, abandoned: []int{5}}
	loc, err := time.LoadLocation("Europe/Lisbon")
	require.NoError(t, err)

	jobs := NewJobService(repo, loc, 30*time.Minute, logger.Nop())
	now := time.Date(2026, 7, 1, 16, 45, 0, 0, time.UTC)
	jobs.now = func() time.Time { return now }

	require.NoError(t, jobs.RunAll(context.Background()))

	// Lisbon is UTC+1 in July.
	assert.Equal(t, "2026-07-01", repo.today)
	assert.Equal(t, "17:45", repo.now)
	assert.Equal(t, now.Add(-30*time.Minute), repo.before)
	assert.Equal(t, []int{1, 2}, repo.updated[db.BookingCompleted])
	assert.Equal(t, []int{5}, repo.updated[db.BookingCancelled])
}

func TestJobService_NothingToDo(t *testing.T) {
	repo := &fakeJobRepo{}
	jobs := NewJobService(repo, nil, time.Hour, logger.Nop())

	n, err := jobs.CompleteFinishedBookings(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = jobs.CancelAbandonedCheckouts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, repo.updated)
}

func TestNewScheduler(t *testing.T) {
	jobs := NewJobService(&fakeJobRepo{}, nil, time.Hour, logger.Nop())

	c, err := NewScheduler(jobs, "@every 1m", logger.Nop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = NewScheduler(jobs, "not a schedule", logger.Nop())
	assert.Error(t, err)
}
