package repository

import (
	"context"
	"time"

	"github.com/fastygo/taskmaster/domain"
)

type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}

// SessionPurger is implemented by stores without native expiry.
type SessionPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}
