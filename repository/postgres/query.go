package postgres

import (
	"fmt"
	"strings"

	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/repository"
)

const taskColumns = `id, user_id, title, description, status_id, created_at, updated_at`

var sortColumns = map[domain.SortField]string{
	domain.SortByCreatedAt: "created_at",
	domain.SortByUpdatedAt: "updated_at",
	domain.SortByTitle:     "title",
}

// taskFilter renders the WHERE clause shared by the list and count queries.
func taskFilter(q repository.TaskQuery) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{q.UserID}

	if q.Search != "" {
		args = append(args, containsPattern(q.Search))
		conditions = append(conditions, fmt.Sprintf(`title ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if q.StatusID != "" {
		args = append(args, q.StatusID)
		conditions = append(conditions, fmt.Sprintf("status_id = $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func orderBy(field domain.SortField, dir domain.SortDirection) string {
	column, ok := sortColumns[field]
	if !ok {
		column = sortColumns[domain.SortByUpdatedAt]
	}
	direction := "DESC"
	if dir == domain.SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id %s", column, direction, direction)
}

func listTasksQuery(q repository.TaskQuery) (string, []interface{}) {
	where, args := taskFilter(q)
	args = append(args, q.Limit, q.Offset)
	query := fmt.Sprintf("SELECT %s FROM tasks %s %s LIMIT $%d OFFSET $%d",
		taskColumns, where, orderBy(q.SortField, q.SortDir), len(args)-1, len(args))
	return query, args
}

func countTasksQuery(q repository.TaskQuery) (string, []interface{}) {
	where, args := taskFilter(q)
	return "SELECT COUNT(*) FROM tasks " + where, args
}
