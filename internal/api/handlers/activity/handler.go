package activity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/activity"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/activity/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"

	defaultLimit = 50
)

type Handler struct {
	service ActivityService
	logger  Logger
}

func NewHandler(service ActivityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/activity
// Query params: entityType, entityId, limit
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := &models.ListActivityRequest{EntityType: handlers.QueryString(r, "entityType")}

	if raw := handlers.QueryString(r, "entityId"); raw != nil {
		id, err := strconv.ParseInt(*raw, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.EntityID = &id
	}

	limit, err := handlers.QueryInt(r, "limit", defaultLimit)
	if err != nil || limit <= 0 {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	req.Limit = uint64(limit)

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, activity.ErrInvalidInput) {
			h.logger.Warn("GET /activity - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /activity - Failed to list activity: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
