package graph

import (
	"context"

	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/usecase/auth"
	"github.com/fastygo/taskmaster/usecase/task"
	"github.com/fastygo/taskmaster/usecase/taskstatus"
)

type TaskService interface {
	ListTasks(ctx context.Context, userID string, params task.ListParams) (*domain.TaskPage, error)
	GetTask(ctx context.Context, id, userID string) (*domain.Task, error)
	CreateTask(ctx context.Context, userID string, input task.CreateInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id, userID string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id, userID string) (*domain.Task, error)
	ClearTasks(ctx context.Context, userID string) (int64, error)
	CloneTasks(ctx context.Context, userID string) ([]domain.Task, error)
}

type StatusService interface {
	ListStatuses(ctx context.Context) ([]domain.TaskStatus, error)
	CreateStatus(ctx context.Context, input taskstatus.CreateInput) (*domain.TaskStatus, error)
}

type AuthService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string, metadata map[string]string) (*domain.Session, *domain.User, error)
	Logout(ctx context.Context, sessionID string) error
}

type ProfileService interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error)
	GenerateProfilePictureURL(ctx context.Context, userID, filename string) (string, error)
}

// Services are the use cases the resolvers delegate to.
type Services struct {
	Tasks    TaskService
	Statuses StatusService
	Auth     AuthService
	Profile  ProfileService
}
