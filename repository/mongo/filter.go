package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/repository"
)

var sortKeys = map[domain.SortField]string{
	domain.SortByCreatedAt: "createdAt",
	domain.SortByUpdatedAt: "updatedAt",
	domain.SortByTitle:     "title",
}

// taskFilter builds the selector for a task query. ok is false when an id
// cannot be a valid ObjectID, in which case nothing can match.
func taskFilter(q repository.TaskQuery) (bson.M, bool) {
	owner, ok := objectID(q.UserID)
	if !ok {
		return nil, false
	}
	filter := bson.M{"userId": owner}

	if q.Search != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	}
	if q.StatusID != "" {
		status, ok := objectID(q.StatusID)
		if !ok {
			return nil, false
		}
		filter["status"] = status
	}
	return filter, true
}

func taskSort(field domain.SortField, dir domain.SortDirection) bson.D {
	key, ok := sortKeys[field]
	if !ok {
		key = sortKeys[domain.SortByUpdatedAt]
	}
	order := -1
	if dir == domain.SortAsc {
		order = 1
	}
	return bson.D{{Key: key, Value: order}, {Key: "_id", Value: order}}
}

func taskFindOptions(q repository.TaskQuery) *options.FindOptions {
	return options.Find().
		SetSort(taskSort(q.SortField, q.SortDir)).
		SetSkip(int64(q.Offset)).
		SetLimit(int64(q.Limit))
}

// taskUpdate converts a patch into a $set document. Only provided fields are set.
func taskUpdate(patch domain.TaskPatch, status primitive.ObjectID) bson.M {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.StatusID != nil {
		set["status"] = status
	}
	return set
}

func userUpdate(patch domain.UserPatch) bson.M {
	set := bson.M{}
	if patch.FirstName != nil {
		set["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["lastName"] = *patch.LastName
	}
	if patch.Email != nil {
		set["email"] = domain.NormalizeEmail(*patch.Email)
	}
	if patch.ProfilePictureURL != nil {
		set["profilePictureURL"] = *patch.ProfilePictureURL
	}
	return set
}
