package repository

import (
	"context"

	"github.com/fastygo/taskmaster/domain"
)

// UserRepository persists accounts. Create reports a duplicate address as domain.ErrEmailTaken.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
}
