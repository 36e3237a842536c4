package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/speaktime/speaktime-api/internal/httputil"
	"github.com/speaktime/speaktime-api/internal/payload"
	"github.com/speaktime/speaktime-api/internal/usecase"
	"github.com/speaktime/speaktime-api/internal/validation"
)

// AuthHandler serves registration, login and token refresh.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validate    *validation.Validator
	logger      *zerolog.Logger
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	validate *validation.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validate:    validate,
		logger:      logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUserAlreadyExists) {
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
			return
		}

		h.logger.Error().Err(err).Msg("failed to register user")
		httputil.RespondError(w, "something went wrong", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, payload.AuthResponse{
		Message: "account created",
		Token:   result.Token,
		User:    result.User,
	}, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
			return
		}

		h.logger.Error().Err(err).Msg("failed to log user in")
		httputil.RespondError(w, "something went wrong", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, payload.AuthResponse{
		Message: "login successful",
		Token:   result.Token,
		User:    result.User,
	}, http.StatusOK)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	user, ok := identity(w, r)
	if !ok {
		return
	}

	token, err := h.authUsecase.Refresh(r.Context(), user.ID.Hex())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to refresh token")
		httputil.RespondError(w, "something went wrong", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, payload.RefreshResponse{Token: token}, http.StatusOK)
}

// Test is a public endpoint used by clients to check that the auth routes
// are reachable.
func (h *AuthHandler) Test(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{
		"message":   "auth routes are up",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}
