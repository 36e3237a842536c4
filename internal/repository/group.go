package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/speaktime/speaktime-api/internal/model"
)

// GroupRepository defines the interface for group-related database operations.
type GroupRepository interface {
	CreateGroup(ctx context.Context, group *model.Group) (*model.Group, error)
	GetGroup(ctx context.Context, id string) (*model.Group, error)
	ListGroupsByUser(ctx context.Context, userID string) ([]*model.Group, error)
	UpdateGroup(ctx context.Context, id string, params UpdateGroupParams) (*model.Group, error)
	DeleteGroup(ctx context.Context, id string) (*model.Group, error)
}

// UpdateGroupParams defines the optional parameters for updating a group.
// Only the fields that are not nil will be updated. The owner is immutable
// and deliberately absent here.
type UpdateGroupParams struct {
	Name        *string
	Description *string
	Members     *[]string
}

const groupCollection = "groups"

type groupMongoRepository struct {
	db *mongo.Database
}

func NewGroupMongoRepository(db *mongo.Database) GroupRepository {
	return &groupMongoRepository{db: db}
}

func (r *groupMongoRepository) CreateGroup(ctx context.Context, group *model.Group) (*model.Group, error) {
	now := time.Now()
	group.CreatedAt = now
	group.UpdatedAt = now
	if group.Members == nil {
		group.Members = []string{}
	}

	result, err := r.db.Collection(groupCollection).InsertOne(ctx, group)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		group.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return group, nil
}

func (r *groupMongoRepository) GetGroup(ctx context.Context, id string) (*model.Group, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(groupCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var group model.Group
	if err := result.Decode(&group); err != nil {
		return nil, err
	}

	return &group, nil
}

func (r *groupMongoRepository) ListGroupsByUser(ctx context.Context, userID string) ([]*model.Group, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(groupCollection).Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []*model.Group
	for cursor.Next(ctx) {
		var group model.Group
		if err := cursor.Decode(&group); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *groupMongoRepository) UpdateGroup(
	ctx context.Context,
	id string,
	params UpdateGroupParams,
) (*model.Group, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	// Build update query
	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.Members != nil {
		updateMap["members"] = *params.Members
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no group fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(groupCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var group model.Group
	if err := result.Decode(&group); err != nil {
		return nil, err
	}

	return &group, nil
}

func (r *groupMongoRepository) DeleteGroup(ctx context.Context, id string) (*model.Group, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(groupCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var group model.Group
	if err := result.Decode(&group); err != nil {
		return nil, err
	}

	return &group, nil
}
