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

type userRepository struct {
	users *mongodriver.Collection
}

// NewUserRepository returns a MongoDB-backed UserRepository.
func NewUserRepository(db *mongodriver.Database) repository.UserRepository {
	return &userRepository{users: db.Collection(UserCollection)}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	userID, ok := objectID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": userID})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	now := time.Now().UTC()
	doc := userDocument{
		ID:                primitive.NewObjectID(),
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Email:             domain.NormalizeEmail(user.Email),
		PasswordHash:      user.PasswordHash,
		ProfilePictureURL: user.ProfilePictureURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *userRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	userID, ok := objectID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	set := userUpdate(patch)
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userDocument
	err := r.users.FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": set}, opts).Decode(&doc)
	switch {
	case errors.Is(err, mongodriver.ErrNoDocuments):
		return nil, domain.ErrUserNotFound
	case mongodriver.IsDuplicateKeyError(err):
		return nil, domain.ErrEmailTaken
	case err != nil:
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}
