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

// UserHandler serves the user listing and the self-service profile
// endpoints.
type UserHandler struct {
	userUsecase usecase.UserUsecase
	validate    *validation.Validator
	logger      *zerolog.Logger
}

func NewUserHandler(
	userUsecase usecase.UserUsecase,
	validate *validation.Validator,
	logger *zerolog.Logger,
) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validate:    validate,
		logger:      logger,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.ListUsers(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list users")
		httputil.RespondError(w, "something went wrong", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, users, http.StatusOK)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "user not found")
	if !ok {
		return
	}

	user, err := h.userUsecase.GetUser(r.Context(), caller.ID.Hex(), id)
	if err != nil {
		h.respondUserError(w, err, "failed to get user")
		return
	}

	httputil.RespondJSON(w, user, http.StatusOK)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "user not found")
	if !ok {
		return
	}

	var req payload.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userUsecase.UpdateUser(r.Context(), caller.ID.Hex(), id, usecase.UpdateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUserAlreadyExists) {
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
			return
		}

		h.respondUserError(w, err, "failed to update user")
		return
	}

	httputil.RespondJSON(w, user, http.StatusOK)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "user not found")
	if !ok {
		return
	}

	if err := h.userUsecase.DeleteUser(r.Context(), caller.ID.Hex(), id); err != nil {
		h.respondUserError(w, err, "failed to delete user")
		return
	}

	httputil.RespondJSON(w, payload.MessageResponse{Message: "account deleted"}, http.StatusOK)
}

func (h *UserHandler) respondUserError(w http.ResponseWriter, err error, logMessage string) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		httputil.RespondError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotOwner):
		httputil.RespondError(w, err.Error(), http.StatusForbidden)
	default:
		h.logger.Error().Err(err).Msg(logMessage)
		httputil.RespondError(w, "something went wrong", http.StatusInternalServerError)
	}
}
