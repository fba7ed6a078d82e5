package enquiries

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/api/middleware"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/enquiries"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/enquiries/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEnquiryID   = "некорректный ID обращения"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidForm        = "анкета заполнена с ошибками"
	msgInvalidStatus      = "недопустимый статус обращения"
	msgNotFound           = "обращение не найдено"
	msgTokenCollision     = "не удалось сформировать номер обращения, повторите попытку"
	msgMissingUserID      = "требуется авторизация"
	msgSubmitted          = "обращение принято"
)

var (
	errInvalidLimit  = errors.New("invalid limit")
	errInvalidOffset = errors.New("invalid offset")
)

type Handler struct {
	service EnquiryService
	logger  Logger
}

func NewHandler(service EnquiryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Submit POST /api/enquiry (публичный)
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitEnquiryRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /enquiry - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Submit(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, enquiries.ErrInvalidInput):
			h.logger.Warn("POST /enquiry - Invalid form: %v", err)
			handlers.RespondInvalidForm(w, msgInvalidForm, err)

		case errors.Is(err, enquiries.ErrTokenCollision):
			h.logger.Warn("POST /enquiry - Token collision")
			handlers.RespondConflict(w, msgTokenCollision)

		default:
			h.logger.Error("POST /enquiry - Failed to submit enquiry: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /enquiry - Enquiry submitted: enquiry_id=%d, token=%s", result.ID, result.TokenID)
	handlers.RespondEnvelope(w, http.StatusCreated, handlers.Envelope{Success: true, Data: result, Message: msgSubmitted})
}

// List GET /api/enquiries
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := ToListRequest(r)
	if err != nil {
		h.logger.Warn("GET /enquiries - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, enquiries.ErrInvalidStatus) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /enquiries - Failed to list enquiries: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/enquiry/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /enquiry/{id} - Invalid enquiry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnquiryID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	h.respondOne(w, "GET /enquiry/{id}", result, err)
}

// GetByToken GET /api/enquiry/token/{tokenId}
func (h *Handler) GetByToken(w http.ResponseWriter, r *http.Request) {
	tokenID := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["tokenId"]))
	if tokenID == "" {
		handlers.RespondBadRequest(w, msgInvalidEnquiryID)
		return
	}

	result, err := h.service.GetByTokenID(r.Context(), tokenID)
	h.respondOne(w, "GET /enquiry/token/{tokenId}", result, err)
}

// UpdateStatus PUT /api/enquiry/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PUT /enquiry/{id}/status - Invalid enquiry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnquiryID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /enquiry/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), id, &models.UpdateStatusRequest{
		ActorID: userID,
		Status:  req.Status,
	})
	if errors.Is(err, enquiries.ErrInvalidStatus) {
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}
	h.respondOne(w, "PUT /enquiry/{id}/status", result, err)
}

func (h *Handler) respondOne(w http.ResponseWriter, route string, result *models.EnquiryResponse, err error) {
	if err != nil {
		if errors.Is(err, enquiries.ErrEnquiryNotFound) {
			h.logger.Warn("%s - Enquiry not found", route)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
