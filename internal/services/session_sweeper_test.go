package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/repository/memory"
)

type failingPurger struct{}

func (failingPurger) PurgeExpired(context.Context, time.Time) (int, error) {
	return 0, errors.New("disk full")
}

func TestSweepRemovesOnlyExpiredSessions(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	store.SetClock(func() time.Time { return now.Add(-time.Hour) })
	sessions := store.Sessions()
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, &domain.Session{ID: "old", UserID: "u1", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, sessions.Save(ctx, &domain.Session{ID: "live", UserID: "u1", ExpiresAt: now.Add(time.Hour)}))

	core, logs := observer.New(zap.InfoLevel)
	sweeper, err := NewSessionSweeper(sessions, "@every 1m", zap.New(core))
	require.NoError(t, err)
	sweeper.now = func() time.Time { return now }

	removed, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, logs.FilterMessage("expired sessions purged").Len())

	store.SetClock(func() time.Time { return now })
	live, err := sessions.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "u1", live.UserID)
}

func TestSweepReportsStoreErrors(t *testing.T) {
	sweeper, err := NewSessionSweeper(failingPurger{}, "", nil)
	require.NoError(t, err)

	_, err = sweeper.Sweep(context.Background())
	assert.EqualError(t, err, "disk full")
}

func TestNewSessionSweeperRejectsBadSchedule(t *testing.T) {
	_, err := NewSessionSweeper(failingPurger{}, "every ten minutes", nil)
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	sweeper, err := NewSessionSweeper(failingPurger{}, "@every 1h", nil)
	require.NoError(t, err)

	sweeper.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sweeper.Stop(ctx)
}
