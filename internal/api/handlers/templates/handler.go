package templates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/api/middleware"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/templates"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/templates/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownKind        = "неизвестный шаблон, ожидается enquiry, admission или documents"
	msgInvalidTemplate    = "некорректное описание полей шаблона"
	msgMissingUserID      = "требуется авторизация"
)

type Handler struct {
	service TemplateService
	logger  Logger
}

func NewHandler(service TemplateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/templates/{kind} (публичный)
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]

	result, err := h.service.Get(r.Context(), kind)
	if err != nil {
		if errors.Is(err, templates.ErrUnknownKind) {
			handlers.RespondNotFound(w, msgUnknownKind)
			return
		}
		h.logger.Error("GET /templates/{kind} - Failed to get template: kind=%s, error=%v", kind, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/templates/{kind}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateTemplateRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /templates/{kind} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &models.UpdateTemplateRequest{
		ActorID: userID,
		Kind:    kind,
		Fields:  req.Fields,
	})
	if err != nil {
		switch {
		case errors.Is(err, templates.ErrUnknownKind):
			handlers.RespondNotFound(w, msgUnknownKind)

		case errors.Is(err, templates.ErrInvalidInput):
			h.logger.Warn("PUT /templates/{kind} - Invalid definition: kind=%s, %v", kind, err)
			handlers.RespondBadRequest(w, msgInvalidTemplate)

		default:
			h.logger.Error("PUT /templates/{kind} - Failed to update template: kind=%s, error=%v", kind, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /templates/{kind} - Template updated: kind=%s, fields=%d", kind, len(result.Fields))
	handlers.RespondJSON(w, http.StatusOK, result)
}
