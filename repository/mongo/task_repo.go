package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/repository"
)

type taskRepository struct {
	tasks *mongodriver.Collection
}

// NewTaskRepository returns a MongoDB-backed TaskRepository.
func NewTaskRepository(db *mongodriver.Database) repository.TaskRepository {
	return &taskRepository{tasks: db.Collection(TaskCollection)}
}

func (r *taskRepository) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	filter, ok := ownedTask(id, userID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	var doc taskDocument
	if err := r.tasks.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, taskError(err)
	}
	return doc.toDomain(), nil
}

func (r *taskRepository) List(ctx context.Context, q repository.TaskQuery) ([]domain.Task, error) {
	filter, ok := taskFilter(q)
	if !ok {
		return []domain.Task{}, nil
	}

	cursor, err := r.tasks.Find(ctx, filter, taskFindOptions(q))
	if err != nil {
		return nil, err
	}
	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, *doc.toDomain())
	}
	return tasks, nil
}

func (r *taskRepository) Count(ctx context.Context, q repository.TaskQuery) (int64, error) {
	filter, ok := taskFilter(q)
	if !ok {
		return 0, nil
	}
	return r.tasks.CountDocuments(ctx, filter)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	owner, ok := objectID(task.UserID)
	if !ok {
		return nil, domain.ErrInvalidPayload
	}
	status, ok := objectID(task.StatusID)
	if !ok {
		return nil, domain.ErrTaskStatusNotFound
	}

	now := time.Now().UTC()
	doc := taskDocument{
		ID:          primitive.NewObjectID(),
		UserID:      owner,
		Title:       task.Title,
		Description: task.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.tasks.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *taskRepository) Update(ctx context.Context, id, userID string, patch domain.TaskPatch) (*domain.Task, error) {
	filter, ok := ownedTask(id, userID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	var status primitive.ObjectID
	if patch.StatusID != nil {
		if status, ok = objectID(*patch.StatusID); !ok {
			return nil, domain.ErrTaskStatusNotFound
		}
	}

	set := taskUpdate(patch, status)
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	if err := r.tasks.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		return nil, taskError(err)
	}
	return doc.toDomain(), nil
}

func (r *taskRepository) Delete(ctx context.Context, id, userID string) (*domain.Task, error) {
	filter, ok := ownedTask(id, userID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	var doc taskDocument
	if err := r.tasks.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		return nil, taskError(err)
	}
	return doc.toDomain(), nil
}

func (r *taskRepository) DeleteAll(ctx context.Context, userID string) (int64, error) {
	owner, ok := objectID(userID)
	if !ok {
		return 0, nil
	}
	result, err := r.tasks.DeleteMany(ctx, bson.M{"userId": owner})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func ownedTask(id, userID string) (bson.M, bool) {
	taskID, ok := objectID(id)
	if !ok {
		return nil, false
	}
	owner, ok := objectID(userID)
	if !ok {
		return nil, false
	}
	return bson.M{"_id": taskID, "userId": owner}, true
}

func taskError(err error) error {
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return domain.ErrTaskNotFound
	}
	return err
}
