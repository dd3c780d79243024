package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func validTask() Task {
	return Task{
		Title:       "Write report",
		Description: "Quarterly numbers for the board",
		StatusID:    "status-1",
		UserID:      "user-1",
	}
}

func TestTaskValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Task)
		ok     bool
	}{
		{name: "valid", mutate: func(*Task) {}, ok: true},
		{name: "short title", mutate: func(t *Task) { t.Title = "ab" }},
		{name: "long title", mutate: func(t *Task) { t.Title = strings.Repeat("x", TitleMaxLength+1) }},
		{name: "short description", mutate: func(t *Task) { t.Description = "too short" }},
		{name: "missing status", mutate: func(t *Task) { t.StatusID = "" }},
		{name: "missing owner", mutate: func(t *Task) { t.UserID = "" }},
		{name: "multibyte title counts runes", mutate: func(t *Task) { t.Title = "äöü" }, ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := validTask()
			tc.mutate(&task)
			err := task.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, IsDomainError(err, ErrCodeInvalid), "got %v", err)
		})
	}
}

func TestTaskPatchAppliesEmptyStrings(t *testing.T) {
	patch := TaskPatch{Title: strPtr("  "), StatusID: strPtr(" status-2 ")}
	assert.False(t, patch.IsEmpty())
	patch.Normalize()

	updated := patch.Apply(validTask())
	assert.Equal(t, "", updated.Title)
	assert.Equal(t, "status-2", updated.StatusID)
	assert.Equal(t, validTask().Description, updated.Description)
	assert.Error(t, updated.Validate())

	assert.True(t, TaskPatch{}.IsEmpty())
}

func TestSortParsing(t *testing.T) {
	assert.Equal(t, SortDesc, ParseSortDirection(" DESC "))
	assert.True(t, ParseSortDirection("Asc").Valid())
	assert.False(t, ParseSortDirection("sideways").Valid())
	assert.True(t, SortByTitle.Valid())
	assert.False(t, SortField("priority").Valid())
}

func TestUserValidate(t *testing.T) {
	base := User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	assert.NoError(t, base.Validate())

	cases := map[string]func(*User){
		"missing email":  func(u *User) { u.Email = "" },
		"bad email":      func(u *User) { u.Email = "ada@" },
		"short name":     func(u *User) { u.FirstName = "A" },
		"digits in name": func(u *User) { u.LastName = "L0velace" },
		"long name":      func(u *User) { u.LastName = strings.Repeat("a", 31) },
		"relative url":   func(u *User) { u.ProfilePictureURL = "/images/me.png" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			u := base
			mutate(&u)
			assert.True(t, IsDomainError(u.Validate(), ErrCodeInvalid))
		})
	}
}

func TestUserPatchNormalizesEmail(t *testing.T) {
	patch := UserPatch{Email: strPtr("  Ada@Example.COM "), FirstName: strPtr(" Augusta ")}
	patch.Normalize()

	u := patch.Apply(User{FirstName: "Ada", LastName: "Lovelace", Email: "old@example.com"})
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "Augusta", u.FirstName)
	assert.Equal(t, "Lovelace", u.LastName)
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long enough"))
	assert.Error(t, ValidatePassword(strings.Repeat("p", 129)))
}

func TestTaskStatusValidate(t *testing.T) {
	s := TaskStatus{Status: " Blocked ", BgColor: "#FED7D7", TextColor: "#822"}
	s.Normalize()
	assert.Equal(t, "Blocked", s.Status)
	assert.NoError(t, s.Validate())

	s.BgColor = "red"
	assert.True(t, IsDomainError(s.Validate(), ErrCodeInvalid))
}

func TestSessionIsExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, (&Session{ExpiresAt: now.Add(time.Minute)}).IsExpired(now))
	assert.True(t, (&Session{ExpiresAt: now}).IsExpired(now))
	assert.True(t, (*Session)(nil).IsExpired(now))
}

func TestErrorMatching(t *testing.T) {
	wrapped := fmt.Errorf("repository: %w", ErrTaskNotFound)
	assert.True(t, errors.Is(wrapped, ErrTaskNotFound))
	assert.False(t, errors.Is(wrapped, ErrUserNotFound))

	cause := errors.New("connection reset")
	err := WrapError(ErrCodeTaskFetchFailed, "failed to fetch tasks", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to fetch tasks: connection reset", err.Error())

	dErr, ok := AsDomainError(fmt.Errorf("outer: %w", err))
	assert.True(t, ok)
	assert.Equal(t, ErrCodeTaskFetchFailed, dErr.Code)

	_, ok = AsDomainError(cause)
	assert.False(t, ok)
}

func TestNewSession(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	s := NewSession("sid", "uid", now, 2*time.Hour, map[string]string{SessionMetaUserAgent: "curl"})

	assert.Equal(t, now.Add(2*time.Hour), s.ExpiresAt)
	assert.Equal(t, time.Hour, s.TTL(now.Add(time.Hour)))
	assert.Zero(t, s.TTL(now.Add(3*time.Hour)))
}
