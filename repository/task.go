package repository

import (
	"context"

	"github.com/fastygo/taskmaster/domain"
)

// TaskQuery selects a page of one owner's tasks. Limit and Offset are
// already resolved by the caller; implementations apply them verbatim.
type TaskQuery struct {
	UserID    string
	Search    string
	StatusID  string
	SortField domain.SortField
	SortDir   domain.SortDirection
	Limit     int
	Offset    int
}

// TaskRepository persists tasks. Every lookup and write is scoped by owner;
// a task that exists but belongs to someone else is reported as domain.ErrTaskNotFound.
type TaskRepository interface {
	GetByID(ctx context.Context, id, userID string) (*domain.Task, error)
	List(ctx context.Context, query TaskQuery) ([]domain.Task, error)
	Count(ctx context.Context, query TaskQuery) (int64, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id, userID string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) (*domain.Task, error)
	DeleteAll(ctx context.Context, userID string) (int64, error)
}
