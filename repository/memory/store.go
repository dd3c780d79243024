// Package memory provides map-backed repositories used by tests and by the
// "memory" database driver for local development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/repository"
)

// Store holds every entity behind one lock so cross-entity reads stay consistent.
type Store struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	tasks    map[string]domain.Task
	statuses map[string]domain.TaskStatus
	sessions map[string]domain.Session

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		tasks:    make(map[string]domain.Task),
		statuses: make(map[string]domain.TaskStatus),
		sessions: make(map[string]domain.Session),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the time source. Tests use it to get distinct timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

func (s *Store) Users() repository.UserRepository             { return userRepository{s} }
func (s *Store) Tasks() repository.TaskRepository             { return taskRepository{s} }
func (s *Store) TaskStatuses() repository.TaskStatusRepository { return taskStatusRepository{s} }
func (s *Store) Sessions() *SessionRepository                  { return &SessionRepository{s} }

type userRepository struct{ s *Store }

func (r userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r userRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *user
	created.Email = domain.NormalizeEmail(created.Email)
	if r.s.emailTaken(created.Email, "") {
		return nil, domain.ErrEmailTaken
	}
	created.ID = uuid.NewString()
	created.CreatedAt = r.s.now()
	created.UpdatedAt = created.CreatedAt
	r.s.users[created.ID] = created
	return &created, nil
}

func (r userRepository) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != nil && r.s.emailTaken(*patch.Email, id) {
		return nil, domain.ErrEmailTaken
	}
	user = patch.Apply(user)
	user.UpdatedAt = r.s.now()
	r.s.users[id] = user
	return &user, nil
}

func (s *Store) emailTaken(email, except string) bool {
	for id, user := range s.users {
		if id != except && user.Email == email {
			return true
		}
	}
	return false
}

type taskRepository struct{ s *Store }

func (r taskRepository) GetByID(_ context.Context, id, userID string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	task, ok := r.s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r taskRepository) List(_ context.Context, q repository.TaskQuery) ([]domain.Task, error) {
	r.s.mu.RLock()
	matched := r.s.matchTasks(q)
	r.s.mu.RUnlock()

	sortTasks(matched, q.SortField, q.SortDir)

	if q.Offset >= len(matched) {
		return []domain.Task{}, nil
	}
	end := len(matched)
	if q.Limit > 0 && q.Offset+q.Limit < end {
		end = q.Offset + q.Limit
	}
	return matched[q.Offset:end], nil
}

func (r taskRepository) Count(_ context.Context, q repository.TaskQuery) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.matchTasks(q))), nil
}

func (r taskRepository) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.statuses[task.StatusID]; !ok {
		return nil, domain.ErrTaskStatusNotFound
	}
	created := *task
	created.ID = uuid.NewString()
	created.Status, created.User = nil, nil
	created.CreatedAt = r.s.now()
	created.UpdatedAt = created.CreatedAt
	r.s.tasks[created.ID] = created
	return &created, nil
}

func (r taskRepository) Update(_ context.Context, id, userID string, patch domain.TaskPatch) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	task, ok := r.s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	if patch.StatusID != nil {
		if _, ok := r.s.statuses[*patch.StatusID]; !ok {
			return nil, domain.ErrTaskStatusNotFound
		}
	}
	task = patch.Apply(task)
	task.UpdatedAt = r.s.now()
	r.s.tasks[id] = task
	return &task, nil
}

func (r taskRepository) Delete(_ context.Context, id, userID string) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	task, ok := r.s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	delete(r.s.tasks, id)
	return &task, nil
}

func (r taskRepository) DeleteAll(_ context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int64
	for id, task := range r.s.tasks {
		if task.UserID == userID {
			delete(r.s.tasks, id)
			removed++
		}
	}
	return removed, nil
}

func (s *Store) matchTasks(q repository.TaskQuery) []domain.Task {
	search := strings.ToLower(q.Search)
	matched := make([]domain.Task, 0)
	for _, task := range s.tasks {
		if task.UserID != q.UserID {
			continue
		}
		if q.StatusID != "" && task.StatusID != q.StatusID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(task.Title), search) {
			continue
		}
		matched = append(matched, task)
	}
	return matched
}

func sortTasks(tasks []domain.Task, field domain.SortField, dir domain.SortDirection) {
	less := func(a, b domain.Task) int {
		switch field {
		case domain.SortByTitle:
			return strings.Compare(a.Title, b.Title)
		case domain.SortByCreatedAt:
			return a.CreatedAt.Compare(b.CreatedAt)
		default:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		c := less(tasks[i], tasks[j])
		if c == 0 {
			c = strings.Compare(tasks[i].ID, tasks[j].ID)
		}
		if dir == domain.SortAsc {
			return c < 0
		}
		return c > 0
	})
}

type taskStatusRepository struct{ s *Store }

func (r taskStatusRepository) GetByID(_ context.Context, id string) (*domain.TaskStatus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	status, ok := r.s.statuses[id]
	if !ok {
		return nil, domain.ErrTaskStatusNotFound
	}
	return &status, nil
}

func (r taskStatusRepository) GetByLabel(_ context.Context, label string) (*domain.TaskStatus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, status := range r.s.statuses {
		if status.Status == label {
			return &status, nil
		}
	}
	return nil, domain.ErrTaskStatusNotFound
}

func (r taskStatusRepository) List(_ context.Context) ([]domain.TaskStatus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	statuses := make([]domain.TaskStatus, 0, len(r.s.statuses))
	for _, status := range r.s.statuses {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Status < statuses[j].Status })
	return statuses, nil
}

func (r taskStatusRepository) Create(_ context.Context, status *domain.TaskStatus) (*domain.TaskStatus, error) {
	if status == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.statuses {
		if existing.Status == status.Status {
			return nil, domain.ErrStatusLabelTaken
		}
	}
	created := *status
	created.ID = uuid.NewString()
	r.s.statuses[created.ID] = created
	return &created, nil
}

// SessionRepository keeps sessions in the shared store. It implements
// repository.SessionRepository and repository.SessionPurger.
type SessionRepository struct{ s *Store }

func (r *SessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	session, ok := r.s.sessions[id]
	if !ok || session.IsExpired(r.s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (r *SessionRepository) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = r.s.now()
	}
	r.s.sessions[session.ID] = *session
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}

func (r *SessionRepository) PurgeExpired(_ context.Context, now time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var purged int
	for id, session := range r.s.sessions {
		if session.IsExpired(now) {
			delete(r.s.sessions, id)
			purged++
		}
	}
	return purged, nil
}
