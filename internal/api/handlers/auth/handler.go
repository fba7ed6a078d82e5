package auth

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/api/middleware"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/auth"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCredentials = "неверный e-mail или пароль"
	msgUserInactive       = "учетная запись отключена"
	msgMissingUserID      = "требуется авторизация"
	msgUserNotFound       = "сотрудник не найден"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Login POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("POST /auth/login - Invalid credentials: email=%s", req.Email)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, auth.ErrUserInactive):
			h.logger.Warn("POST /auth/login - Inactive user: email=%s", req.Email)
			handlers.RespondForbidden(w, msgUserInactive)

		default:
			h.logger.Error("POST /auth/login - Failed to login: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - Logged in: user_id=%d, role=%s", result.User.ID, result.User.Role)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Me GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /auth/me - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			h.logger.Warn("GET /auth/me - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, auth.ErrUserInactive):
			h.logger.Warn("GET /auth/me - Inactive user: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUserInactive)

		default:
			h.logger.Error("GET /auth/me - Failed to get user: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}
