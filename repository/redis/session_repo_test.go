package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskmaster/domain"
)

func newRepo(t *testing.T) (*miniredis.Miniredis, *sessionRepository) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, NewSessionRepository(client, time.Hour).(*sessionRepository)
}

func TestSessionRepositorySaveAndGet(t *testing.T) {
	server, repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.Session{ID: "s1", UserID: "u1"}))
	assert.True(t, server.Exists(keyPrefix+"s1"))
	assert.Greater(t, server.TTL(keyPrefix+"s1"), 59*time.Minute)

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
}

func TestSessionRepositoryExpiresKeys(t *testing.T) {
	server, repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.Session{ID: "s1", UserID: "u1"}))
	server.FastForward(2 * time.Hour)

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepositoryDelete(t *testing.T) {
	_, repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.Session{ID: "s1", UserID: "u1"}))
	require.NoError(t, repo.Delete(ctx, "s1"))

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
