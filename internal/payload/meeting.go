package payload

import (
	"encoding/json"

	"github.com/speaktime/speaktime-api/internal/model"
)

// MeetingParticipant is one speaking-time entry of a meeting request. It
// accepts either a bare name string or a {name, speaking_time} object, as
// clients send both.
type MeetingParticipant struct {
	Name         string `json:"name"          validate:"required"`
	SpeakingTime int64  `json:"speaking_time" validate:"gte=0"`
}

func (p *MeetingParticipant) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}

		p.Name = name
		p.SpeakingTime = 0

		return nil
	}

	type alias MeetingParticipant
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	*p = MeetingParticipant(a)

	return nil
}

type CreateMeetingRequest struct {
	GroupID      *string              `json:"group_id"     validate:"omitempty,mongodb"`
	Title        string               `json:"title"`
	Duration     int64                `json:"duration"     validate:"required,gt=0"`
	Participants []MeetingParticipant `json:"participants" validate:"required,min=1,dive"`
}

// UpdateMeetingRequest carries a replacement participant list and optional
// notes. An omitted list keeps the stored entries; an empty list clears them.
type UpdateMeetingRequest struct {
	Participants []MeetingParticipant `json:"participants" validate:"omitempty,dive"`
	Notes        *string              `json:"notes"`
}

type MeetingResponse struct {
	Message string         `json:"message,omitempty"`
	Meeting *model.Meeting `json:"meeting"`
}

type MeetingListResponse struct {
	Meetings []*model.Meeting `json:"meetings"`
}

// Participants converts request entries to their model form.
func Participants(entries []MeetingParticipant) []model.Participant {
	participants := make([]model.Participant, 0, len(entries))
	for _, entry := range entries {
		participants = append(participants, model.Participant{
			Name:         entry.Name,
			SpeakingTime: entry.SpeakingTime,
		})
	}

	return participants
}
