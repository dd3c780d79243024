package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/repository/memory"
)

type presignerMock struct {
	mock.Mock
}

func (m *presignerMock) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiry)
	return args.String(0), args.Error(1)
}

func seedUser(t *testing.T, store *memory.Store, email string) *domain.User {
	t.Helper()
	user, err := store.Users().Create(context.Background(), &domain.User{FirstName: "Ada", LastName: "Lovelace", Email: email})
	require.NoError(t, err)
	return user
}

func TestGenerateProfilePictureURL(t *testing.T) {
	store := memory.NewStore()
	presigner := &presignerMock{}
	uc := New(store.Users(), presigner, 15*time.Minute, nil)

	presigner.On("PresignPut", mock.Anything, "user-profiles/u1/me.png", "image/png", 15*time.Minute).
		Return("https://example.com/signed-url", nil)

	url, err := uc.GenerateProfilePictureURL(context.Background(), "u1", "../../me.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/signed-url", url)
	presigner.AssertExpectations(t)
}

func TestGenerateProfilePictureURLRejectsType(t *testing.T) {
	uc := New(memory.NewStore().Users(), &presignerMock{}, 0, nil)

	for _, name := range []string{"notes.txt", "archive.png.zip", "noext", ""} {
		_, err := uc.GenerateProfilePictureURL(context.Background(), "u1", name)
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidFileType), name)
	}
}

func TestGenerateProfilePictureURLStorageFailure(t *testing.T) {
	presigner := &presignerMock{}
	presigner.On("PresignPut", mock.Anything, mock.Anything, "image/jpeg", mock.Anything).Return("", errors.New("no credentials"))
	uc := New(memory.NewStore().Users(), presigner, 0, nil)

	_, err := uc.GenerateProfilePictureURL(context.Background(), "u1", "Photo.JPG")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUploadURLFailed))
}

func TestGenerateProfilePictureURLWithoutStorage(t *testing.T) {
	uc := New(memory.NewStore().Users(), nil, 0, nil)
	_, err := uc.GenerateProfilePictureURL(context.Background(), "u1", "me.png")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUploadURLFailed))
}

func TestUpdateUserSparsePatch(t *testing.T) {
	store := memory.NewStore()
	user := seedUser(t, store, "ada@example.com")
	uc := New(store.Users(), nil, 0, nil)

	picture := "https://cdn.example.com/user-profiles/ada.png"
	updated, err := uc.UpdateUser(context.Background(), user.ID, domain.UserPatch{ProfilePictureURL: &picture})
	require.NoError(t, err)
	assert.Equal(t, picture, updated.ProfilePictureURL)
	assert.Equal(t, "Ada", updated.FirstName)
}

func TestUpdateUserValidatesEmptyStrings(t *testing.T) {
	store := memory.NewStore()
	user := seedUser(t, store, "ada@example.com")
	uc := New(store.Users(), nil, 0, nil)

	empty := ""
	_, err := uc.UpdateUser(context.Background(), user.ID, domain.UserPatch{FirstName: &empty})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	current, err := uc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", current.FirstName)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	store := memory.NewStore()
	user := seedUser(t, store, "ada@example.com")
	seedUser(t, store, "taken@example.com")
	uc := New(store.Users(), nil, 0, nil)

	email := "Taken@Example.com"
	_, err := uc.UpdateUser(context.Background(), user.ID, domain.UserPatch{Email: &email})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUserUpdateFailed))
}

func TestGetUserNotFound(t *testing.T) {
	uc := New(memory.NewStore().Users(), nil, 0, nil)
	_, err := uc.GetUser(context.Background(), "missing")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUserNotFound))
}
