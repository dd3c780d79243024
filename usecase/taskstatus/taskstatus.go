package taskstatus

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fastygo/taskmaster/domain"
	appLogger "github.com/fastygo/taskmaster/pkg/logger"
	"github.com/fastygo/taskmaster/repository"
)

type CreateInput struct {
	Status    string
	BgColor   string
	TextColor string
}

type UseCase struct {
	statuses repository.TaskStatusRepository
	logger   *zap.Logger
}

func New(statuses repository.TaskStatusRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{statuses: statuses, logger: logger}
}

func (uc *UseCase) ListStatuses(ctx context.Context) ([]domain.TaskStatus, error) {
	statuses, err := uc.statuses.List(ctx)
	if err != nil {
		appLogger.WithRequestID(ctx, uc.logger).Error("list task statuses", zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeTaskStatusFetchFailed, "failed to fetch task statuses", err)
	}
	return statuses, nil
}

func (uc *UseCase) CreateStatus(ctx context.Context, input CreateInput) (*domain.TaskStatus, error) {
	status := &domain.TaskStatus{
		Status:    input.Status,
		BgColor:   input.BgColor,
		TextColor: input.TextColor,
	}
	status.Normalize()
	if err := status.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.statuses.Create(ctx, status)
	if err != nil {
		if _, ok := domain.AsDomainError(err); ok {
			return nil, err
		}
		appLogger.WithRequestID(ctx, uc.logger).Error("create task status", zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeTaskStatusCreationFailed, "failed to create task status", err)
	}
	return created, nil
}

// Seed creates every status whose label does not exist yet and returns how many were added.
func (uc *UseCase) Seed(ctx context.Context, statuses []domain.TaskStatus) (int, error) {
	var created int
	for _, status := range statuses {
		status.Normalize()
		_, err := uc.statuses.GetByLabel(ctx, status.Status)
		if err == nil {
			continue
		}
		if !domain.IsDomainError(err, domain.ErrCodeTaskStatusNotFound) {
			return created, err
		}

		if _, err := uc.CreateStatus(ctx, CreateInput{
			Status:    status.Status,
			BgColor:   status.BgColor,
			TextColor: status.TextColor,
		}); err != nil {
			return created, fmt.Errorf("seed %q: %w", status.Status, err)
		}
		created++
	}
	uc.logger.Info("task statuses seeded", zap.Int("created", created), zap.Int("total", len(statuses)))
	return created, nil
}

type seedFile struct {
	Statuses []domain.TaskStatus `yaml:"statuses"`
}

// ParseSeed decodes a YAML seed document with a top-level "statuses" list.
func ParseSeed(data []byte) ([]domain.TaskStatus, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse status seed: %w", err)
	}
	for i := range file.Statuses {
		file.Statuses[i].Normalize()
		if err := file.Statuses[i].Validate(); err != nil {
			return nil, fmt.Errorf("status seed entry %d: %w", i, err)
		}
	}
	return file.Statuses, nil
}
