package slot_settings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/api/middleware"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSettings    = "некорректные настройки расписания"
	msgMissingUserID      = "требуется авторизация"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/slot-settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetSettings(r.Context())
	if err != nil {
		h.logger.Error("GET /slot-settings - Failed to get settings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/slot-settings
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slot-settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("PUT /slot-settings - Invalid day start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSettings)
		return
	}

	result, err := h.service.UpdateSettings(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, slots.ErrInvalidInput) {
			h.logger.Warn("PUT /slot-settings - Invalid settings: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSettings+": "+unwrapDetail(err))
			return
		}
		h.logger.Error("PUT /slot-settings - Failed to update settings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /slot-settings - Settings updated by admin=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// unwrapDetail текст ошибки без префикса сентинела
func unwrapDetail(err error) string {
	return strings.TrimPrefix(err.Error(), slots.ErrInvalidInput.Error()+": ")
}
