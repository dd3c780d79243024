package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/repository"
)

func tickingClock() func() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		base = base.Add(time.Second)
		return base
	}
}

func seedTasks(t *testing.T, store *Store, owner string, titles ...string) domain.TaskStatus {
	t.Helper()
	ctx := context.Background()
	status, err := store.TaskStatuses().GetByLabel(ctx, "To Do")
	if err != nil {
		status, err = store.TaskStatuses().Create(ctx, &domain.TaskStatus{Status: "To Do", BgColor: "#fff", TextColor: "#000"})
		require.NoError(t, err)
	}
	for _, title := range titles {
		_, err := store.Tasks().Create(ctx, &domain.Task{UserID: owner, Title: title, Description: "description", StatusID: status.ID})
		require.NoError(t, err)
	}
	return *status
}

func TestTaskListFiltersSortsAndPages(t *testing.T) {
	store := NewStore()
	store.SetClock(tickingClock())
	seedTasks(t, store, "alice", "Write report", "Buy milk", "Review report")
	seedTasks(t, store, "bob", "Report for bob")

	ctx := context.Background()
	repo := store.Tasks()

	query := repository.TaskQuery{UserID: "alice", Search: "REPORT", SortField: domain.SortByTitle, SortDir: domain.SortAsc, Limit: 10}
	tasks, err := repo.List(ctx, query)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Review report", tasks[0].Title)
	assert.Equal(t, "Write report", tasks[1].Title)

	total, err := repo.Count(ctx, query)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	page, err := repo.List(ctx, repository.TaskQuery{UserID: "alice", SortField: domain.SortByUpdatedAt, SortDir: domain.SortDesc, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Write report", page[0].Title)

	empty, err := repo.List(ctx, repository.TaskQuery{UserID: "alice", Limit: 10, Offset: 30})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTaskWritesAreScopedToOwner(t *testing.T) {
	store := NewStore()
	seedTasks(t, store, "alice", "Write report")
	ctx := context.Background()

	tasks, err := store.Tasks().List(ctx, repository.TaskQuery{UserID: "alice", Limit: 1})
	require.NoError(t, err)
	id := tasks[0].ID

	title := "Hijacked"
	_, err = store.Tasks().Update(ctx, id, "bob", domain.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = store.Tasks().Delete(ctx, id, "bob")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	removed, err := store.Tasks().DeleteAll(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, removed)

	deleted, err := store.Tasks().Delete(ctx, id, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Write report", deleted.Title)
}

func TestTaskCreateRequiresKnownStatus(t *testing.T) {
	store := NewStore()
	_, err := store.Tasks().Create(context.Background(), &domain.Task{UserID: "alice", Title: "Title", Description: "description", StatusID: "missing"})
	assert.ErrorIs(t, err, domain.ErrTaskStatusNotFound)
}

func TestUserEmailIsUnique(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.Users().Create(ctx, &domain.User{FirstName: "Ada", LastName: "Lovelace", Email: "Ada@Example.com"})
	require.NoError(t, err)

	_, err = store.Users().Create(ctx, &domain.User{FirstName: "Ada", LastName: "Byron", Email: "ada@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	found, err := store.Users().GetByEmail(ctx, " ADA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", found.LastName)
}

func TestStatusLabelIsUnique(t *testing.T) {
	store := NewStore()
	seedTasks(t, store, "alice")
	_, err := store.TaskStatuses().Create(context.Background(), &domain.TaskStatus{Status: "To Do", BgColor: "#fff", TextColor: "#000"})
	assert.ErrorIs(t, err, domain.ErrStatusLabelTaken)
}

func TestSessionPurge(t *testing.T) {
	store := NewStore()
	sessions := store.Sessions()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, sessions.Save(ctx, &domain.Session{ID: "live", UserID: "u", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, sessions.Save(ctx, &domain.Session{ID: "dead", UserID: "u", ExpiresAt: now.Add(-time.Hour)}))

	_, err := sessions.Get(ctx, "dead")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	purged, err := sessions.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
}
