package taskstatus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskmaster/assets"
	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/repository/memory"
)

func TestCreateStatusValidates(t *testing.T) {
	uc := New(memory.NewStore().TaskStatuses(), nil)
	ctx := context.Background()

	created, err := uc.CreateStatus(ctx, CreateInput{Status: " New ", BgColor: "#FFFFFF", TextColor: "#000000"})
	require.NoError(t, err)
	assert.Equal(t, "New", created.Status)
	assert.NotEmpty(t, created.ID)

	_, err = uc.CreateStatus(ctx, CreateInput{Status: "Broken", BgColor: "white", TextColor: "#000"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.CreateStatus(ctx, CreateInput{Status: "New", BgColor: "#FFFF00", TextColor: "#000000"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeTaskStatusCreationFailed))
}

func TestSeedIsIdempotent(t *testing.T) {
	uc := New(memory.NewStore().TaskStatuses(), nil)
	ctx := context.Background()

	defaults, err := ParseSeed(assets.DefaultStatuses)
	require.NoError(t, err)
	require.Len(t, defaults, 3)

	created, err := uc.Seed(ctx, defaults)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	created, err = uc.Seed(ctx, defaults)
	require.NoError(t, err)
	assert.Zero(t, created)

	statuses, err := uc.ListStatuses(ctx)
	require.NoError(t, err)
	labels := make([]string, 0, len(statuses))
	for _, s := range statuses {
		labels = append(labels, s.Status)
	}
	assert.ElementsMatch(t, []string{"To Do", "In Progress", "Done"}, labels)
}

func TestParseSeedRejectsBadColor(t *testing.T) {
	_, err := ParseSeed([]byte("statuses:\n  - status: Late\n    bgColor: red\n    textColor: '#000'\n"))
	assert.Error(t, err)
}
