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

// GroupHandler serves group CRUD and membership mutation.
type GroupHandler struct {
	groupUsecase usecase.GroupUsecase
	validate     *validation.Validator
	logger       *zerolog.Logger
}

func NewGroupHandler(
	groupUsecase usecase.GroupUsecase,
	validate *validation.Validator,
	logger *zerolog.Logger,
) *GroupHandler {
	return &GroupHandler{
		groupUsecase: groupUsecase,
		validate:     validate,
		logger:       logger,
	}
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	var req payload.CreateGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	group, err := h.groupUsecase.CreateGroup(r.Context(), caller.ID.Hex(), usecase.CreateGroupParams{
		Name:        req.Name,
		Description: req.Description,
		Members:     req.Members,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create group")
		httputil.RespondError(w, "something went wrong", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, payload.GroupResponse{Message: "group created", Group: group}, http.StatusCreated)
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	groups, err := h.groupUsecase.ListGroups(r.Context(), caller.ID.Hex())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list groups")
		httputil.RespondError(w, "something went wrong", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, payload.GroupListResponse{Groups: groups}, http.StatusOK)
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	group, err := h.groupUsecase.GetGroup(r.Context(), caller, id)
	if err != nil {
		h.respondGroupError(w, err, "failed to get group")
		return
	}

	httputil.RespondJSON(w, payload.GroupResponse{Group: group}, http.StatusOK)
}

func (h *GroupHandler) Members(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	group, err := h.groupUsecase.GetGroup(r.Context(), caller, id)
	if err != nil {
		h.respondGroupError(w, err, "failed to get group members")
		return
	}

	httputil.RespondJSON(w, payload.GroupMembersResponse{
		Members:   group.Members,
		GroupName: group.Name,
	}, http.StatusOK)
}

func (h *GroupHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	var req payload.UpdateGroupNameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	group, err := h.groupUsecase.UpdateGroupName(r.Context(), caller, id, req.Name)
	if err != nil {
		h.respondGroupError(w, err, "failed to update group name")
		return
	}

	httputil.RespondJSON(w, payload.GroupResponse{Message: "group name updated", Group: group}, http.StatusOK)
}

func (h *GroupHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	var req payload.UpdateGroupDescriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	group, err := h.groupUsecase.UpdateGroupDescription(r.Context(), caller, id, *req.Description)
	if err != nil {
		h.respondGroupError(w, err, "failed to update group description")
		return
	}

	httputil.RespondJSON(w, payload.GroupResponse{Message: "group description updated", Group: group}, http.StatusOK)
}

func (h *GroupHandler) AddMembers(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	var req payload.GroupMembersRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	group, err := h.groupUsecase.AddMembers(r.Context(), caller, id, req.Members)
	if err != nil {
		h.respondGroupError(w, err, "failed to add group members")
		return
	}

	httputil.RespondJSON(w, payload.GroupResponse{Message: "members added", Group: group}, http.StatusOK)
}

func (h *GroupHandler) RemoveMembers(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	var req payload.GroupMembersRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	group, err := h.groupUsecase.RemoveMembers(r.Context(), caller, id, req.Members)
	if err != nil {
		h.respondGroupError(w, err, "failed to remove group members")
		return
	}

	httputil.RespondJSON(w, payload.GroupResponse{Message: "members removed", Group: group}, http.StatusOK)
}

func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	if err := h.groupUsecase.DeleteGroup(r.Context(), caller, id); err != nil {
		h.respondGroupError(w, err, "failed to delete group")
		return
	}

	httputil.RespondJSON(w, payload.MessageResponse{Message: "group deleted"}, http.StatusOK)
}

func (h *GroupHandler) callerAndID(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	caller, ok := identity(w, r)
	if !ok {
		return "", "", false
	}
	id, ok := pathID(w, r, "group not found")
	if !ok {
		return "", "", false
	}

	return caller.ID.Hex(), id, true
}

func (h *GroupHandler) respondGroupError(w http.ResponseWriter, err error, logMessage string) {
	switch {
	case errors.Is(err, usecase.ErrGroupNotFound):
		httputil.RespondError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotOwner):
		httputil.RespondError(w, err.Error(), http.StatusForbidden)
	default:
		h.logger.Error().Err(err).Msg(logMessage)
		httputil.RespondError(w, "something went wrong", http.StatusInternalServerError)
	}
}
