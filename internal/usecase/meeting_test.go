package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/speaktime/speaktime-api/internal/model"
)

func meetingParams() CreateMeetingParams {
	return CreateMeetingParams{
		Title:    "sprint planning",
		Duration: 1800,
		Participants: []model.Participant{
			{Name: "Marie", SpeakingTime: 600},
			{Name: "Paul", SpeakingTime: 300},
		},
	}
}

func TestMeetingUsecase_CreateMeeting(t *testing.T) {
	uc := NewMeetingUsecase(newFakeMeetingRepo(), newFakeGroupRepo())
	ownerID := bson.NewObjectID().Hex()

	meeting, err := uc.CreateMeeting(context.Background(), ownerID, meetingParams())
	require.NoError(t, err)

	assert.Equal(t, "sprint planning", meeting.Title)
	assert.Equal(t, ownerID, meeting.UserID)
	assert.Nil(t, meeting.GroupID)
	assert.Equal(t, int64(1800), meeting.Duration)
	assert.Len(t, meeting.Participants, 2)
	assert.Equal(t, "", meeting.Notes)
	assert.WithinDuration(t, time.Now(), meeting.Date, time.Minute)
}

func TestMeetingUsecase_CreateMeetingDefaultTitle(t *testing.T) {
	uc := NewMeetingUsecase(newFakeMeetingRepo(), newFakeGroupRepo())

	params := meetingParams()
	params.Title = ""
	meeting, err := uc.CreateMeeting(context.Background(), bson.NewObjectID().Hex(), params)
	require.NoError(t, err)

	now := time.Now()
	want := fmt.Sprintf("Meeting of %02d/%02d/%d", now.Day(), int(now.Month()), now.Year())
	assert.Equal(t, want, meeting.Title)
}

func TestMeetingUsecase_CreateMeetingEmptyGroupIDMeansNoGroup(t *testing.T) {
	uc := NewMeetingUsecase(newFakeMeetingRepo(), newFakeGroupRepo())

	params := meetingParams()
	empty := ""
	params.GroupID = &empty

	meeting, err := uc.CreateMeeting(context.Background(), bson.NewObjectID().Hex(), params)
	require.NoError(t, err)

	assert.Nil(t, meeting.GroupID)
}

func TestMeetingUsecase_CreateMeetingWithGroup(t *testing.T) {
	groups := newFakeGroupRepo()
	groupUC := NewGroupUsecase(groups)
	uc := NewMeetingUsecase(newFakeMeetingRepo(), groups)
	ownerID := bson.NewObjectID().Hex()

	group, err := groupUC.CreateGroup(context.Background(), ownerID, CreateGroupParams{Name: "standup"})
	require.NoError(t, err)

	params := meetingParams()
	groupID := group.ID.Hex()
	params.GroupID = &groupID

	meeting, err := uc.CreateMeeting(context.Background(), ownerID, params)
	require.NoError(t, err)
	require.NotNil(t, meeting.GroupID)
	assert.Equal(t, groupID, *meeting.GroupID)
}

func TestMeetingUsecase_CreateMeetingUnknownGroup(t *testing.T) {
	uc := NewMeetingUsecase(newFakeMeetingRepo(), newFakeGroupRepo())

	params := meetingParams()
	groupID := bson.NewObjectID().Hex()
	params.GroupID = &groupID

	_, err := uc.CreateMeeting(context.Background(), bson.NewObjectID().Hex(), params)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestMeetingUsecase_CreateMeetingForeignGroup(t *testing.T) {
	groups := newFakeGroupRepo()
	groupUC := NewGroupUsecase(groups)
	uc := NewMeetingUsecase(newFakeMeetingRepo(), groups)

	group, err := groupUC.CreateGroup(context.Background(), bson.NewObjectID().Hex(), CreateGroupParams{Name: "standup"})
	require.NoError(t, err)

	params := meetingParams()
	groupID := group.ID.Hex()
	params.GroupID = &groupID

	_, err = uc.CreateMeeting(context.Background(), bson.NewObjectID().Hex(), params)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestMeetingUsecase_UpdateMeeting(t *testing.T) {
	meetings := newFakeMeetingRepo()
	uc := NewMeetingUsecase(meetings, newFakeGroupRepo())
	ownerID := bson.NewObjectID().Hex()

	meeting, err := uc.CreateMeeting(context.Background(), ownerID, meetingParams())
	require.NoError(t, err)

	notes := "Paul dominated the discussion"
	participants := []model.Participant{
		{Name: "Marie", SpeakingTime: 700},
		{Name: "Paul", SpeakingTime: 900},
	}
	updated, err := uc.UpdateMeeting(context.Background(), ownerID, meeting.ID.Hex(), UpdateMeetingParams{
		Participants: &participants,
		Notes:        &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(700), updated.Participants[0].SpeakingTime)
	assert.Equal(t, int64(900), updated.Participants[1].SpeakingTime)
	assert.Equal(t, notes, updated.Notes)
}

func TestMeetingUsecase_UpdateMeetingKeepsNotesWhenOmitted(t *testing.T) {
	meetings := newFakeMeetingRepo()
	uc := NewMeetingUsecase(meetings, newFakeGroupRepo())
	ownerID := bson.NewObjectID().Hex()

	meeting, err := uc.CreateMeeting(context.Background(), ownerID, meetingParams())
	require.NoError(t, err)

	notes := "first pass"
	_, err = uc.UpdateMeeting(context.Background(), ownerID, meeting.ID.Hex(), UpdateMeetingParams{
		Participants: &meeting.Participants,
		Notes:        &notes,
	})
	require.NoError(t, err)

	updated, err := uc.UpdateMeeting(context.Background(), ownerID, meeting.ID.Hex(), UpdateMeetingParams{
		Participants: &meeting.Participants,
	})
	require.NoError(t, err)

	assert.Equal(t, "first pass", updated.Notes)
}

func TestMeetingUsecase_UpdateMeetingClearsParticipants(t *testing.T) {
	meetings := newFakeMeetingRepo()
	uc := NewMeetingUsecase(meetings, newFakeGroupRepo())
	ownerID := bson.NewObjectID().Hex()

	meeting, err := uc.CreateMeeting(context.Background(), ownerID, meetingParams())
	require.NoError(t, err)

	empty := []model.Participant{}
	updated, err := uc.UpdateMeeting(context.Background(), ownerID, meeting.ID.Hex(), UpdateMeetingParams{
		Participants: &empty,
	})
	require.NoError(t, err)

	assert.Empty(t, updated.Participants)
}

func TestMeetingUsecase_UpdateMeetingWithNoFields(t *testing.T) {
	meetings := newFakeMeetingRepo()
	uc := NewMeetingUsecase(meetings, newFakeGroupRepo())
	ownerID := bson.NewObjectID().Hex()

	meeting, err := uc.CreateMeeting(context.Background(), ownerID, meetingParams())
	require.NoError(t, err)

	updated, err := uc.UpdateMeeting(context.Background(), ownerID, meeting.ID.Hex(), UpdateMeetingParams{})
	require.NoError(t, err)

	assert.Equal(t, meeting.Participants, updated.Participants)
	assert.Equal(t, meeting.Notes, updated.Notes)
}

func TestMeetingUsecase_AccessControl(t *testing.T) {
	meetings := newFakeMeetingRepo()
	uc := NewMeetingUsecase(meetings, newFakeGroupRepo())
	ownerID := bson.NewObjectID().Hex()
	intruderID := bson.NewObjectID().Hex()

	meeting, err := uc.CreateMeeting(context.Background(), ownerID, meetingParams())
	require.NoError(t, err)

	_, err = uc.GetMeeting(context.Background(), intruderID, meeting.ID.Hex())
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = uc.GetMeeting(context.Background(), ownerID, bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrMeetingNotFound)

	err = uc.DeleteMeeting(context.Background(), intruderID, meeting.ID.Hex())
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestMeetingUsecase_DeleteMeeting(t *testing.T) {
	meetings := newFakeMeetingRepo()
	uc := NewMeetingUsecase(meetings, newFakeGroupRepo())
	ownerID := bson.NewObjectID().Hex()

	meeting, err := uc.CreateMeeting(context.Background(), ownerID, meetingParams())
	require.NoError(t, err)

	require.NoError(t, uc.DeleteMeeting(context.Background(), ownerID, meeting.ID.Hex()))

	_, err = uc.GetMeeting(context.Background(), ownerID, meeting.ID.Hex())
	assert.ErrorIs(t, err, ErrMeetingNotFound)
}

func TestMeetingUsecase_ListMeetingsScopedToOwner(t *testing.T) {
	meetings := newFakeMeetingRepo()
	uc := NewMeetingUsecase(meetings, newFakeGroupRepo())
	ownerID := bson.NewObjectID().Hex()

	_, err := uc.CreateMeeting(context.Background(), ownerID, meetingParams())
	require.NoError(t, err)
	_, err = uc.CreateMeeting(context.Background(), bson.NewObjectID().Hex(), meetingParams())
	require.NoError(t, err)

	list, err := uc.ListMeetings(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
