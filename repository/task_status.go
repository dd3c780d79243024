package repository

import (
	"context"

	"github.com/fastygo/taskmaster/domain"
)

type TaskStatusRepository interface {
	GetByID(ctx context.Context, id string) (*domain.TaskStatus, error)
	GetByLabel(ctx context.Context, label string) (*domain.TaskStatus, error)
	List(ctx context.Context) ([]domain.TaskStatus, error)
	Create(ctx context.Context, status *domain.TaskStatus) (*domain.TaskStatus, error)
}
