package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/repository"
)

type taskStatusRepository struct {
	statuses *mongodriver.Collection
}

// NewTaskStatusRepository returns a MongoDB-backed TaskStatusRepository.
func NewTaskStatusRepository(db *mongodriver.Database) repository.TaskStatusRepository {
	return &taskStatusRepository{statuses: db.Collection(TaskStatusCollection)}
}

func (r *taskStatusRepository) GetByID(ctx context.Context, id string) (*domain.TaskStatus, error) {
	statusID, ok := objectID(id)
	if !ok {
		return nil, domain.ErrTaskStatusNotFound
	}
	return r.findOne(ctx, bson.M{"_id": statusID})
}

func (r *taskStatusRepository) GetByLabel(ctx context.Context, label string) (*domain.TaskStatus, error) {
	return r.findOne(ctx, bson.M{"status": label})
}

func (r *taskStatusRepository) List(ctx context.Context) ([]domain.TaskStatus, error) {
	cursor, err := r.statuses.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "status", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []taskStatusDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	statuses := make([]domain.TaskStatus, 0, len(docs))
	for _, doc := range docs {
		statuses = append(statuses, *doc.toDomain())
	}
	return statuses, nil
}

func (r *taskStatusRepository) Create(ctx context.Context, status *domain.TaskStatus) (*domain.TaskStatus, error) {
	if status == nil {
		return nil, domain.ErrInvalidPayload
	}
	doc := taskStatusDocument{
		ID:        primitive.NewObjectID(),
		Status:    status.Status,
		BgColor:   status.BgColor,
		TextColor: status.TextColor,
	}
	if _, err := r.statuses.InsertOne(ctx, doc); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, domain.ErrStatusLabelTaken
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *taskStatusRepository) findOne(ctx context.Context, filter bson.M) (*domain.TaskStatus, error) {
	var doc taskStatusDocument
	if err := r.statuses.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, domain.ErrTaskStatusNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}
