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

const taskStatusColumns = `id, status, bg_color, text_color`

type taskStatusRepository struct {
	pool *pgxpool.Pool
}

// NewTaskStatusRepository returns a Postgres-backed lookup table of task statuses.
func NewTaskStatusRepository(pool *pgxpool.Pool) repository.TaskStatusRepository {
	return &taskStatusRepository{pool: pool}
}

func (r *taskStatusRepository) GetByID(ctx context.Context, id string) (*domain.TaskStatus, error) {
	if !validID(id) {
		return nil, domain.ErrTaskStatusNotFound
	}
	const query = `SELECT ` + taskStatusColumns + ` FROM task_statuses WHERE id = $1`
	return scanTaskStatus(r.pool.QueryRow(ctx, query, id))
}

func (r *taskStatusRepository) GetByLabel(ctx context.Context, label string) (*domain.TaskStatus, error) {
	const query = `SELECT ` + taskStatusColumns + ` FROM task_statuses WHERE status = $1`
	return scanTaskStatus(r.pool.QueryRow(ctx, query, label))
}

func (r *taskStatusRepository) List(ctx context.Context) ([]domain.TaskStatus, error) {
	const query = `SELECT ` + taskStatusColumns + ` FROM task_statuses ORDER BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []domain.TaskStatus
	for rows.Next() {
		status, err := scanTaskStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, *status)
	}
	return statuses, rows.Err()
}

func (r *taskStatusRepository) Create(ctx context.Context, status *domain.TaskStatus) (*domain.TaskStatus, error) {
	if status == nil {
		return nil, domain.ErrInvalidPayload
	}
	if status.ID == "" {
		status.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO task_statuses (id, status, bg_color, text_color)
	VALUES ($1, $2, $3, $4)
	`
	if _, err := r.pool.Exec(ctx, query, status.ID, status.Status, status.BgColor, status.TextColor); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrStatusLabelTaken
		}
		return nil, err
	}
	return status, nil
}

func scanTaskStatus(row rowScanner) (*domain.TaskStatus, error) {
	var status domain.TaskStatus
	if err := row.Scan(&status.ID, &status.Status, &status.BgColor, &status.TextColor); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskStatusNotFound
		}
		return nil, err
	}
	return &status, nil
}
