package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/domain"
	appLogger "github.com/fastygo/taskmaster/pkg/logger"
	"github.com/fastygo/taskmaster/repository"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   PasswordHasher
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func New(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	hasher PasswordHasher,
	ttl time.Duration,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		ttl:      ttl,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register validates the profile and password, hashes the password and stores the account.
func (uc *UseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	user := &domain.User{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     domain.NormalizeEmail(input.Email),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeUserRegistrationFailed, "failed to register user", err)
	}
	user.PasswordHash = hash

	created, err := uc.users.Create(ctx, user)
	if err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeUserRegistrationFailed, "failed to register user", err)
	}
	uc.log(ctx).Info("user registered", zap.String("user_id", created.ID))
	return created, nil
}

// Authenticate is the local strategy: it resolves an email/password pair to a user.
// Unknown emails and wrong passwords yield the same error.
func (uc *UseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeUserNotFound) {
			return nil, domain.ErrLoginFailed
		}
		return nil, uc.fail(ctx, domain.ErrCodeUserLoginFailed, "failed to log in", err)
	}

	ok, err := uc.hasher.Compare(password, user.PasswordHash)
	if err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeUserLoginFailed, "failed to log in", err)
	}
	if !ok {
		return nil, domain.ErrLoginFailed
	}
	return user, nil
}

// Login authenticates the credentials and opens a server-side session.
func (uc *UseCase) Login(ctx context.Context, email, password string, metadata map[string]string) (*domain.Session, *domain.User, error) {
	user, err := uc.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	session := domain.NewSession(uuid.NewString(), user.ID, uc.now(), uc.ttl, metadata)
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, nil, uc.fail(ctx, domain.ErrCodeUserLoginFailed, "failed to log in", err)
	}
	uc.log(ctx).Info("user logged in", zap.String("user_id", user.ID))
	return session, user, nil
}

// Logout destroys the session. An already missing session is not an error.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return uc.fail(ctx, domain.ErrCodeUserLogoutFailed, "failed to log out", err)
	}
	return nil
}

// ResolveSession restores the viewer behind a session id. It returns nil values
// without error when the session is unknown, expired, or its user no longer exists.
func (uc *UseCase) ResolveSession(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
	if sessionID == "" {
		return nil, nil, nil
	}

	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeSessionNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	if session.IsExpired(uc.now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, nil, nil
	}

	user, err := uc.users.GetByID(ctx, session.UserID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeUserNotFound) {
			_ = uc.sessions.Delete(ctx, sessionID)
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return session, user, nil
}

func (uc *UseCase) fail(ctx context.Context, code domain.ErrorCode, message string, err error) error {
	if _, ok := domain.AsDomainError(err); ok {
		return err
	}
	uc.log(ctx).Error(message, zap.Error(err))
	return domain.WrapError(code, message, err)
}

func (uc *UseCase) log(ctx context.Context) *zap.Logger {
	return appLogger.WithRequestID(ctx, uc.logger)
}
