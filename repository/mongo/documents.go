package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fastygo/taskmaster/domain"
)

const (
	UserCollection       = "user"
	TaskCollection       = "tasks"
	TaskStatusCollection = "task_status"
)

type userDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	FirstName         string             `bson:"firstName"`
	LastName          string             `bson:"lastName"`
	Email             string             `bson:"email"`
	PasswordHash      string             `bson:"passwordHash"`
	ProfilePictureURL string             `bson:"profilePictureURL,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:                d.ID.Hex(),
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		Email:             d.Email,
		PasswordHash:      d.PasswordHash,
		ProfilePictureURL: d.ProfilePictureURL,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      primitive.ObjectID `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d taskDocument) toDomain() *domain.Task {
	return &domain.Task{
		ID:          d.ID.Hex(),
		UserID:      d.UserID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		StatusID:    d.Status.Hex(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type taskStatusDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Status    string             `bson:"status"`
	BgColor   string             `bson:"bgColor"`
	TextColor string             `bson:"textColor"`
}

func (d taskStatusDocument) toDomain() *domain.TaskStatus {
	return &domain.TaskStatus{
		ID:        d.ID.Hex(),
		Status:    d.Status,
		BgColor:   d.BgColor,
		TextColor: d.TextColor,
	}
}

func objectID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	return id, err == nil
}
