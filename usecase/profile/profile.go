package profile

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/domain"
	appLogger "github.com/fastygo/taskmaster/pkg/logger"
	"github.com/fastygo/taskmaster/repository"
)

const uploadPrefix = "user-profiles"

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Presigner issues time-limited upload URLs for object storage.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
}

type UseCase struct {
	users     repository.UserRepository
	presigner Presigner
	expiry    time.Duration
	logger    *zap.Logger
}

// New builds the profile use case. presigner may be nil when object storage is
// not configured, in which case upload URLs fail with UPLOAD_URL_FAILED.
func New(users repository.UserRepository, presigner Presigner, expiry time.Duration, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &UseCase{
		users:     users,
		presigner: presigner,
		expiry:    expiry,
		logger:    logger,
	}
}

func (uc *UseCase) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeUserNotFound, "failed to fetch user", err)
	}
	return user, nil
}

// UpdateUser applies a sparse profile patch. Provided fields are set even when
// empty and the resulting profile must pass validation.
func (uc *UseCase) UpdateUser(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error) {
	patch.Normalize()

	current, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeUserUpdateFailed, "failed to update user", err)
	}
	if patch.IsEmpty() {
		return current, nil
	}

	next := patch.Apply(*current)
	if err := next.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.users.Update(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.WrapError(domain.ErrCodeUserUpdateFailed, "email is already in use", err)
		}
		return nil, uc.fail(ctx, domain.ErrCodeUserUpdateFailed, "failed to update user", err)
	}
	uc.log(ctx).Info("user profile updated", zap.String("user_id", userID))
	return updated, nil
}

// GenerateProfilePictureURL signs an upload of filename into the user's profile folder.
// Only JPEG and PNG files are accepted.
func (uc *UseCase) GenerateProfilePictureURL(ctx context.Context, userID, filename string) (string, error) {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	contentType, ok := imageTypes[strings.ToLower(path.Ext(name))]
	if !ok || name == "." || name == "/" {
		return "", domain.NewError(domain.ErrCodeInvalidFileType, "invalid file type, only jpg, jpeg and png are allowed")
	}
	if uc.presigner == nil {
		return "", domain.NewError(domain.ErrCodeUploadURLFailed, "file uploads are not configured")
	}

	key := path.Join(uploadPrefix, userID, name)
	url, err := uc.presigner.PresignPut(ctx, key, contentType, uc.expiry)
	if err != nil {
		return "", uc.fail(ctx, domain.ErrCodeUploadURLFailed, "failed to generate upload URL", err)
	}
	return url, nil
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
