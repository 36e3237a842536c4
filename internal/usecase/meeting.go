package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/speaktime/speaktime-api/internal/model"
	"github.com/speaktime/speaktime-api/internal/repository"
)

// MeetingUsecase defines the interface for meeting-related use cases.
type MeetingUsecase interface {
	CreateMeeting(ctx context.Context, ownerID string, params CreateMeetingParams) (*model.Meeting, error)
	ListMeetings(ctx context.Context, ownerID string) ([]*model.Meeting, error)
	GetMeeting(ctx context.Context, ownerID, id string) (*model.Meeting, error)
	UpdateMeeting(ctx context.Context, ownerID, id string, params UpdateMeetingParams) (*model.Meeting, error)
	DeleteMeeting(ctx context.Context, ownerID, id string) error
}

// CreateMeetingParams defines the parameters for recording a meeting.
// Duration is in seconds and must be positive; participants carry
// non-negative speaking times.
type CreateMeetingParams struct {
	GroupID      *string
	Title        string
	Duration     int64
	Participants []model.Participant
}

// UpdateMeetingParams defines the fields updatable on a meeting. Only the
// fields that are not nil are written; an empty participant list clears the
// speaking-time entries.
type UpdateMeetingParams struct {
	Participants *[]model.Participant
	Notes        *string
}

var ErrMeetingNotFound = errors.New("meeting not found")

type meetingUsecase struct {
	meetingRepo repository.MeetingRepository
	groupRepo   repository.GroupRepository
}

func NewMeetingUsecase(
	meetingRepo repository.MeetingRepository,
	groupRepo repository.GroupRepository,
) MeetingUsecase {
	return &meetingUsecase{meetingRepo: meetingRepo, groupRepo: groupRepo}
}

func (u *meetingUsecase) CreateMeeting(
	ctx context.Context,
	ownerID string,
	params CreateMeetingParams,
) (*model.Meeting, error) {
	// Clients send an empty group id to mean no group.
	if params.GroupID != nil && *params.GroupID == "" {
		params.GroupID = nil
	}

	// An associated group must exist and belong to the caller.
	if params.GroupID != nil {
		group, err := u.groupRepo.GetGroup(ctx, *params.GroupID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrGroupNotFound
			}

			return nil, err
		}
		if group.UserID != ownerID {
			return nil, ErrNotOwner
		}
	}

	now := time.Now()
	title := params.Title
	if title == "" {
		title = fmt.Sprintf("Meeting of %02d/%02d/%d", now.Day(), int(now.Month()), now.Year())
	}

	return u.meetingRepo.CreateMeeting(ctx, &model.Meeting{
		UserID:       ownerID,
		GroupID:      params.GroupID,
		Title:        title,
		Date:         now,
		Duration:     params.Duration,
		Participants: params.Participants,
		Notes:        "",
	})
}

func (u *meetingUsecase) ListMeetings(ctx context.Context, ownerID string) ([]*model.Meeting, error) {
	return u.meetingRepo.ListMeetingsByUser(ctx, ownerID)
}

func (u *meetingUsecase) GetMeeting(ctx context.Context, ownerID, id string) (*model.Meeting, error) {
	return u.ownedMeeting(ctx, ownerID, id)
}

func (u *meetingUsecase) UpdateMeeting(
	ctx context.Context,
	ownerID, id string,
	params UpdateMeetingParams,
) (*model.Meeting, error) {
	current, err := u.ownedMeeting(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	// An update naming no fields leaves the meeting as it is.
	if params.Participants == nil && params.Notes == nil {
		return current, nil
	}

	meeting, err := u.meetingRepo.UpdateMeeting(ctx, id, repository.UpdateMeetingParams{
		Participants: params.Participants,
		Notes:        params.Notes,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Deleted between the ownership check and the write.
			return nil, ErrMeetingNotFound
		}

		return nil, err
	}

	return meeting, nil
}

func (u *meetingUsecase) DeleteMeeting(ctx context.Context, ownerID, id string) error {
	if _, err := u.ownedMeeting(ctx, ownerID, id); err != nil {
		return err
	}

	if _, err := u.meetingRepo.DeleteMeeting(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrMeetingNotFound
		}

		return err
	}

	return nil
}

// ownedMeeting fetches the meeting and enforces the ownership policy. A
// missing meeting is reported before ownership is evaluated.
func (u *meetingUsecase) ownedMeeting(ctx context.Context, ownerID, id string) (*model.Meeting, error) {
	meeting, err := u.meetingRepo.GetMeeting(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMeetingNotFound
		}

		return nil, err
	}

	if meeting.UserID != ownerID {
		return nil, ErrNotOwner
	}

	return meeting, nil
}
