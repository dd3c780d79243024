package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/domain"
	appLogger "github.com/fastygo/taskmaster/pkg/logger"
	"github.com/fastygo/taskmaster/repository"
)

// Config bounds page sizes for task lists.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// ListParams is the caller-facing form of a task list query. Zero values select defaults.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	StatusID  string
	SortField domain.SortField
	SortDir   domain.SortDirection
}

type CreateInput struct {
	Title       string
	Description string
	StatusID    string
}

type UseCase struct {
	tasks    repository.TaskRepository
	statuses repository.TaskStatusRepository
	users    repository.UserRepository
	cfg      Config
	logger   *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	statuses repository.TaskStatusRepository,
	users repository.UserRepository,
	cfg Config,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		cfg.MaxLimit = 100
	}
	return &UseCase{
		tasks:    tasks,
		statuses: statuses,
		users:    users,
		cfg:      cfg,
		logger:   logger,
	}
}

// ListTasks returns one page of the owner's tasks together with pagination links.
func (uc *UseCase) ListTasks(ctx context.Context, userID string, params ListParams) (*domain.TaskPage, error) {
	query, page, err := uc.buildQuery(userID, params)
	if err != nil {
		return nil, err
	}

	total, err := uc.tasks.Count(ctx, query)
	if err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeTaskFetchFailed, "failed to fetch tasks", err)
	}
	tasks, err := uc.tasks.List(ctx, query)
	if err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeTaskFetchFailed, "failed to fetch tasks", err)
	}
	if err := uc.populate(ctx, userID, tasks); err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeTaskFetchFailed, "failed to fetch tasks", err)
	}

	return &domain.TaskPage{
		Tasks:      tasks,
		Pagination: domain.NewPagination(page, query.Limit, total),
	}, nil
}

func (uc *UseCase) GetTask(ctx context.Context, id, userID string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id, userID)
	if err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeTaskFetchFailed, "failed to fetch task", err)
	}
	return uc.populateOne(ctx, task, domain.ErrCodeTaskFetchFailed)
}

// CreateTask validates the input, checks the status exists and stores the task for userID.
func (uc *UseCase) CreateTask(ctx context.Context, userID string, input CreateInput) (*domain.Task, error) {
	task := &domain.Task{
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		StatusID:    strings.TrimSpace(input.StatusID),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.statuses.GetByID(ctx, task.StatusID); err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeTaskCreationFailed, "failed to create task", err)
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeTaskCreationFailed, "failed to create task", err)
	}
	uc.log(ctx).Info("task created", zap.String("task_id", created.ID))
	return uc.populateOne(ctx, created, domain.ErrCodeTaskCreationFailed)
}

// UpdateTask applies a sparse patch to a task owned by userID. Provided fields
// are always applied and the result is validated as a whole before writing.
func (uc *UseCase) UpdateTask(ctx context.Context, id, userID string, patch domain.TaskPatch) (*domain.Task, error) {
	patch.Normalize()

	current, err := uc.tasks.GetByID(ctx, id, userID)
	if err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeTaskUpdateFailed, "failed to update task", err)
	}
	if patch.IsEmpty() {
		return uc.populateOne(ctx, current, domain.ErrCodeTaskUpdateFailed)
	}

	next := patch.Apply(*current)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	if patch.StatusID != nil && *patch.StatusID != current.StatusID {
		if _, err := uc.statuses.GetByID(ctx, *patch.StatusID); err != nil {
			return nil, uc.fail(ctx, domain.ErrCodeTaskUpdateFailed, "failed to update task", err)
		}
	}

	updated, err := uc.tasks.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeTaskUpdateFailed, "failed to update task", err)
	}
	return uc.populateOne(ctx, updated, domain.ErrCodeTaskUpdateFailed)
}

// DeleteTask removes a task owned by userID and returns it.
func (uc *UseCase) DeleteTask(ctx context.Context, id, userID string) (*domain.Task, error) {
	deleted, err := uc.tasks.Delete(ctx, id, userID)
	if err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeTaskDeletionFailed, "failed to delete task", err)
	}
	uc.log(ctx).Info("task deleted", zap.String("task_id", deleted.ID))

	// The row is already gone, so a lookup failure only costs the references.
	tasks := []domain.Task{*deleted}
	if err := uc.populate(ctx, userID, tasks); err != nil {
		uc.log(ctx).Warn("failed to load deleted task references", zap.String("task_id", deleted.ID), zap.Error(err))
		return deleted, nil
	}
	return &tasks[0], nil
}

// ClearTasks deletes every task of userID and reports how many were removed.
func (uc *UseCase) ClearTasks(ctx context.Context, userID string) (int64, error) {
	removed, err := uc.tasks.DeleteAll(ctx, userID)
	if err != nil {
		return 0, uc.fail(ctx, domain.ErrCodeTaskDeletionFailed, "failed to clear tasks", err)
	}
	uc.log(ctx).Info("tasks cleared", zap.Int64("count", removed))
	return removed, nil
}

// CloneTasks duplicates every task of userID and returns the copies.
func (uc *UseCase) CloneTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	var originals []domain.Task
	query := repository.TaskQuery{
		UserID:    userID,
		SortField: domain.SortByCreatedAt,
		SortDir:   domain.SortAsc,
		Limit:     uc.cfg.MaxLimit,
	}
	for {
		batch, err := uc.tasks.List(ctx, query)
		if err != nil {
			return nil, uc.fail(ctx, domain.ErrCodeTaskFetchFailed, "failed to fetch tasks", err)
		}
		originals = append(originals, batch...)
		if len(batch) < query.Limit {
			break
		}
		query.Offset += query.Limit
	}

	clones := make([]domain.Task, 0, len(originals))
	for _, original := range originals {
		clone, err := uc.tasks.Create(ctx, &domain.Task{
			UserID:      userID,
			Title:       original.Title,
			Description: original.Description,
			StatusID:    original.StatusID,
		})
		if err != nil {
			return nil, uc.fail(ctx, domain.ErrCodeTaskCreationFailed, "failed to clone tasks", err)
		}
		clones = append(clones, *clone)
	}

	if err := uc.populate(ctx, userID, clones); err != nil {
		return nil, uc.fail(ctx, domain.ErrCodeTaskCreationFailed, "failed to clone tasks", err)
	}
	uc.log(ctx).Info("tasks cloned", zap.Int("count", len(clones)))
	return clones, nil
}

func (uc *UseCase) buildQuery(userID string, params ListParams) (repository.TaskQuery, int, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = uc.cfg.DefaultLimit
	}
	if limit > uc.cfg.MaxLimit {
		limit = uc.cfg.MaxLimit
	}

	field := params.SortField
	if field == "" {
		field = domain.SortByUpdatedAt
	}
	if !field.Valid() {
		return repository.TaskQuery{}, 0, domain.Invalid("cannot sort tasks by %q", string(field))
	}
	dir := domain.ParseSortDirection(string(params.SortDir))
	if dir == "" {
		dir = domain.SortDesc
	}
	if !dir.Valid() {
		return repository.TaskQuery{}, 0, domain.Invalid("sort direction must be asc or desc")
	}

	return repository.TaskQuery{
		UserID:    userID,
		Search:    strings.TrimSpace(params.Search),
		StatusID:  strings.TrimSpace(params.StatusID),
		SortField: field,
		SortDir:   dir,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}, page, nil
}

// populate fills Status and User on every task. Statuses are loaded once and
// all tasks share the same owner.
func (uc *UseCase) populate(ctx context.Context, userID string, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	statuses, err := uc.statuses.List(ctx)
	if err != nil {
		return err
	}
	byID := make(map[string]domain.TaskStatus, len(statuses))
	for _, status := range statuses {
		byID[status.ID] = status
	}

	owner, err := uc.users.GetByID(ctx, userID)
	if err != nil && !domain.IsDomainError(err, domain.ErrCodeUserNotFound) {
		return err
	}

	for i := range tasks {
		if status, ok := byID[tasks[i].StatusID]; ok {
			tasks[i].Status = &status
		}
		tasks[i].User = owner
	}
	return nil
}

func (uc *UseCase) populateOne(ctx context.Context, task *domain.Task, code domain.ErrorCode) (*domain.Task, error) {
	tasks := []domain.Task{*task}
	if err := uc.populate(ctx, task.UserID, tasks); err != nil {
		return nil, uc.fail(ctx, code, "failed to load task references", err)
	}
	return &tasks[0], nil
}

// fail passes domain errors through and hides anything else behind code.
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

