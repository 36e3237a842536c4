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

// MeetingRepository defines the interface for meeting-related database
// operations.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error)
	GetMeeting(ctx context.Context, id string) (*model.Meeting, error)
	ListMeetingsByUser(ctx context.Context, userID string) ([]*model.Meeting, error)
	UpdateMeeting(ctx context.Context, id string, params UpdateMeetingParams) (*model.Meeting, error)
	DeleteMeeting(ctx context.Context, id string) (*model.Meeting, error)
}

// UpdateMeetingParams defines the optional parameters for updating a meeting.
// Only the fields that are not nil will be updated.
type UpdateMeetingParams struct {
	Participants *[]model.Participant
	Notes        *string
}

const meetingCollection = "meetings"

type meetingMongoRepository struct {
	db *mongo.Database
}

func NewMeetingMongoRepository(db *mongo.Database) MeetingRepository {
	return &meetingMongoRepository{db: db}
}

func (r *meetingMongoRepository) CreateMeeting(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error) {
	now := time.Now()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now

	result, err := r.db.Collection(meetingCollection).InsertOne(ctx, meeting)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		meeting.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return meeting, nil
}

func (r *meetingMongoRepository) GetMeeting(ctx context.Context, id string) (*model.Meeting, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(meetingCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var meeting model.Meeting
	if err := result.Decode(&meeting); err != nil {
		return nil, err
	}

	return &meeting, nil
}

func (r *meetingMongoRepository) ListMeetingsByUser(ctx context.Context, userID string) ([]*model.Meeting, error) {
	// Most recent meetings first
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.db.Collection(meetingCollection).Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var meetings []*model.Meeting
	for cursor.Next(ctx) {
		var meeting model.Meeting
		if err := cursor.Decode(&meeting); err != nil {
			return nil, err
		}
		meetings = append(meetings, &meeting)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return meetings, nil
}

func (r *meetingMongoRepository) UpdateMeeting(
	ctx context.Context,
	id string,
	params UpdateMeetingParams,
) (*model.Meeting, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	// Build update query
	updateMap := bson.M{}
	if params.Participants != nil {
		updateMap["participants"] = *params.Participants
	}
	if params.Notes != nil {
		updateMap["notes"] = *params.Notes
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no meeting fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(meetingCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var meeting model.Meeting
	if err := result.Decode(&meeting); err != nil {
		return nil, err
	}

	return &meeting, nil
}

func (r *meetingMongoRepository) DeleteMeeting(ctx context.Context, id string) (*model.Meeting, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(meetingCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var meeting model.Meeting
	if err := result.Decode(&meeting); err != nil {
		return nil, err
	}

	return &meeting, nil
}
