package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/speaktime/speaktime-api/internal/httputil"
	"github.com/speaktime/speaktime-api/internal/payload"
	"github.com/speaktime/speaktime-api/internal/usecase"
	"github.com/speaktime/speaktime-api/internal/validation"
)

// MeetingHandler serves meeting CRUD and speaking-time updates.
type MeetingHandler struct {
	meetingUsecase usecase.MeetingUsecase
	validate       *validation.Validator
	logger         *zerolog.Logger
}

func NewMeetingHandler(
	meetingUsecase usecase.MeetingUsecase,
	validate *validation.Validator,
	logger *zerolog.Logger,
) *MeetingHandler {
	return &MeetingHandler{
		meetingUsecase: meetingUsecase,
		validate:       validate,
		logger:         logger,
	}
}

func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	var req payload.CreateMeetingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	meeting, err := h.meetingUsecase.CreateMeeting(r.Context(), caller.ID.Hex(), usecase.CreateMeetingParams{
		GroupID:      req.GroupID,
		Title:        req.Title,
		Duration:     req.Duration,
		Participants: payload.Participants(req.Participants),
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrGroupNotFound):
			httputil.RespondError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, usecase.ErrNotOwner):
			httputil.RespondError(w, err.Error(), http.StatusForbidden)
		default:
			h.logger.Error().Err(err).Msg("failed to create meeting")
			httputil.RespondError(w, "something went wrong", http.StatusInternalServerError)
		}
		return
	}

	httputil.RespondJSON(w, payload.MeetingResponse{Message: "meeting created", Meeting: meeting}, http.StatusCreated)
}

func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	meetings, err := h.meetingUsecase.ListMeetings(r.Context(), caller.ID.Hex())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list meetings")
		httputil.RespondError(w, "something went wrong", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, payload.MeetingListResponse{Meetings: meetings}, http.StatusOK)
}

func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	meeting, err := h.meetingUsecase.GetMeeting(r.Context(), caller, id)
	if err != nil {
		h.respondMeetingError(w, err, "failed to get meeting")
		return
	}

	httputil.RespondJSON(w, payload.MeetingResponse{Meeting: meeting}, http.StatusOK)
}

func (h *MeetingHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	var req payload.UpdateMeetingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := usecase.UpdateMeetingParams{Notes: req.Notes}
	if req.Participants != nil {
		participants := payload.Participants(req.Participants)
		params.Participants = &participants
	}

	meeting, err := h.meetingUsecase.UpdateMeeting(r.Context(), caller, id, params)
	if err != nil {
		h.respondMeetingError(w, err, "failed to update meeting")
		return
	}

	httputil.RespondJSON(w, payload.MeetingResponse{Message: "speaking times updated", Meeting: meeting}, http.StatusOK)
}

func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	if err := h.meetingUsecase.DeleteMeeting(r.Context(), caller, id); err != nil {
		h.respondMeetingError(w, err, "failed to delete meeting")
		return
	}

	httputil.RespondJSON(w, payload.MessageResponse{Message: "meeting deleted"}, http.StatusOK)
}

func (h *MeetingHandler) callerAndID(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	caller, ok := identity(w, r)
	if !ok {
		return "", "", false
	}
	id, ok := pathID(w, r, "meeting not found")
	if !ok {
		return "", "", false
	}

	return caller.ID.Hex(), id, true
}

func (h *MeetingHandler) respondMeetingError(w http.ResponseWriter, err error, logMessage string) {
	switch {
	case errors.Is(err, usecase.ErrMeetingNotFound):
		httputil.RespondError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotOwner):
		httputil.RespondError(w, err.Error(), http.StatusForbidden)
	default:
		h.logger.Error().Err(err).Msg(logMessage)
		httputil.RespondError(w, "something went wrong", http.StatusInternalServerError)
	}
}
