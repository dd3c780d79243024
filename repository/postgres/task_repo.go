package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	if !validID(id) || !validID(userID) {
		return nil, domain.ErrTaskNotFound
	}
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`
	return scanTask(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *taskRepository) List(ctx context.Context, q repository.TaskQuery) ([]domain.Task, error) {
	if !validID(q.UserID) || (q.StatusID != "" && !validID(q.StatusID)) {
		return []domain.Task{}, nil
	}

	query, args := listTasksQuery(q)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0, q.Limit)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Count(ctx context.Context, q repository.TaskQuery) (int64, error) {
	if !validID(q.UserID) || (q.StatusID != "" && !validID(q.StatusID)) {
		return 0, nil
	}

	query, args := countTasksQuery(q)
	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if !validID(task.StatusID) {
		return nil, domain.ErrTaskStatusNotFound
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, user_id, title, description, status_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.StatusID,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrTaskStatusNotFound
		}
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, id, userID string, patch domain.TaskPatch) (*domain.Task, error) {
	if !validID(id) || !validID(userID) {
		return nil, domain.ErrTaskNotFound
	}
	if patch.StatusID != nil && !validID(*patch.StatusID) {
		return nil, domain.ErrTaskStatusNotFound
	}

	const query = `
	UPDATE tasks
	SET title = COALESCE($3, title),
		description = COALESCE($4, description),
		status_id = COALESCE($5::uuid, status_id),
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING ` + taskColumns

	task, err := scanTask(r.pool.QueryRow(ctx, query,
		id,
		userID,
		patch.Title,
		patch.Description,
		patch.StatusID,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrTaskStatusNotFound
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id, userID string) (*domain.Task, error) {
	if !validID(id) || !validID(userID) {
		return nil, domain.ErrTaskNotFound
	}
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2 RETURNING ` + taskColumns
	return scanTask(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *taskRepository) DeleteAll(ctx context.Context, userID string) (int64, error) {
	if !validID(userID) {
		return 0, nil
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.StatusID,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}
