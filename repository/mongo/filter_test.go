package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/repository"
)

func TestTaskFilter(t *testing.T) {
	owner := primitive.NewObjectID()
	status := primitive.NewObjectID()

	filter, ok := taskFilter(repository.TaskQuery{
		UserID:   owner.Hex(),
		Search:   "buy (milk)",
		StatusID: status.Hex(),
	})

	require.True(t, ok)
	assert.Equal(t, owner, filter["userId"])
	assert.Equal(t, status, filter["status"])
	assert.Equal(t, primitive.Regex{Pattern: `buy \(milk\)`, Options: "i"}, filter["title"])
}

func TestTaskFilter_InvalidIDsMatchNothing(t *testing.T) {
	_, ok := taskFilter(repository.TaskQuery{UserID: "user123"})
	assert.False(t, ok)

	_, ok = taskFilter(repository.TaskQuery{UserID: primitive.NewObjectID().Hex(), StatusID: "todo"})
	assert.False(t, ok)
}

func TestTaskSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}}, taskSort("", ""))
	assert.Equal(t, bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}}, taskSort(domain.SortByTitle, domain.SortAsc))
}

func TestTaskUpdate_OnlyProvidedFields(t *testing.T) {
	empty := ""
	set := taskUpdate(domain.TaskPatch{Description: &empty}, primitive.NilObjectID)

	assert.Equal(t, bson.M{"description": ""}, set)
}

func TestUserUpdate_NormalizesEmail(t *testing.T) {
	email := " Jane@Example.COM "
	set := userUpdate(domain.UserPatch{Email: &email})

	assert.Equal(t, bson.M{"email": "jane@example.com"}, set)
}
