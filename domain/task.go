package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	TitleMinLength       = 3
	TitleMaxLength       = 100
	DescriptionMinLength = 10
	DescriptionMaxLength = 1000
)

// Task represents a user-owned activity item.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StatusID    string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Populated references, filled by the task service.
	Status *TaskStatus `json:"task_status,omitempty"`
	User   *User       `json:"user,omitempty"`
}

// Validate enforces the field bounds that must hold before a write.
func (t *Task) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if t.UserID == "" {
		return Invalid("task owner is required")
	}
	if t.StatusID == "" {
		return Invalid("status is required")
	}
	if n := utf8.RuneCountInString(t.Title); n < TitleMinLength || n > TitleMaxLength {
		return Invalid("title must be between %d and %d characters", TitleMinLength, TitleMaxLength)
	}
	if n := utf8.RuneCountInString(t.Description); n < DescriptionMinLength || n > DescriptionMaxLength {
		return Invalid("description must be between %d and %d characters", DescriptionMinLength, DescriptionMaxLength)
	}
	return nil
}

// TaskPatch is a sparse task update. Nil fields are left untouched,
// non-nil fields are applied as given (an empty title is an error, not a skip).
type TaskPatch struct {
	Title       *string
	Description *string
	StatusID    *string
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.StatusID == nil
}

// Normalize trims the text fields in place.
func (p *TaskPatch) Normalize() {
	trim(p.Title)
	trim(p.Description)
	trim(p.StatusID)
}

// Apply writes the patch onto a copy of t and returns it.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.StatusID != nil {
		t.StatusID = *p.StatusID
	}
	return t
}

// SortField enumerates the columns a task list can be ordered by.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByTitle     SortField = "title"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByCreatedAt, SortByUpdatedAt, SortByTitle:
		return true
	}
	return false
}

// SortDirection is either ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// ParseSortDirection accepts any casing of asc/desc.
func ParseSortDirection(value string) SortDirection {
	return SortDirection(strings.ToLower(strings.TrimSpace(value)))
}
