package admissions

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/api/middleware"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/admissions"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/admissions/models"
	createAdmission "github.com/m04kA/SMC-AdmissionsService/internal/usecase/create_admission"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAdmissionID = "некорректный ID дела"
	msgInvalidEnquiryID   = "некорректный ID обращения"
	msgInvalidDocumentID  = "некорректный ID документа"
	msgInvalidParams      = "некорректные параметры запроса"
	msgMissingUserID      = "требуется авторизация"
	msgNotFound           = "дело не найдено"
	msgEnquiryNotFound    = "обращение не найдено"
	msgEnquiryClosed      = "обращение закрыто"
	msgAdmissionExists    = "по обращению уже открыто дело"
	msgDocumentNotFound   = "документ не найден"
	msgNotEditable        = "дело уже рассмотрено и не может быть изменено"
	msgMissingDocuments   = "не приложены обязательные документы"
	msgInvalidForm        = "анкета заполнена с ошибками"
	msgInvalidStatus      = "недопустимый статус дела"
	msgCannotReview       = "рассмотреть можно только поданное дело"
	msgForbidden          = "доступ запрещен"
	msgDocumentDeleted    = "документ удален"
)

var (
	errInvalidLimit  = errors.New("invalid limit")
	errInvalidOffset = errors.New("invalid offset")
)

type Handler struct {
	service AdmissionService
	create  CreateAdmissionUseCase
	logger  Logger
}

func NewHandler(service AdmissionService, create CreateAdmissionUseCase, logger Logger) *Handler {
	return &Handler{
		service: service,
		create:  create,
		logger:  logger,
	}
}

// Create POST /api/admission/create/{enquiryId}
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	enquiryID, err := handlers.PathInt64(r, "enquiryId")
	if err != nil {
		h.logger.Warn("POST /admission/create/{enquiryId} - Invalid enquiry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnquiryID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.create.Execute(r.Context(), &createAdmission.Request{EnquiryID: enquiryID, ActorID: userID})
	if err != nil {
		switch {
		case errors.Is(err, createAdmission.ErrEnquiryNotFound):
			h.logger.Warn("POST /admission/create/{enquiryId} - Enquiry not found: enquiry_id=%d", enquiryID)
			handlers.RespondNotFound(w, msgEnquiryNotFound)

		case errors.Is(err, createAdmission.ErrEnquiryClosed):
			h.logger.Warn("POST /admission/create/{enquiryId} - Enquiry closed: enquiry_id=%d", enquiryID)
			handlers.RespondConflict(w, msgEnquiryClosed)

		case errors.Is(err, createAdmission.ErrAdmissionExists):
			h.logger.Warn("POST /admission/create/{enquiryId} - Admission exists: enquiry_id=%d", enquiryID)
			handlers.RespondConflict(w, msgAdmissionExists)

		case errors.Is(err, createAdmission.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidEnquiryID)

		default:
			h.logger.Error("POST /admission/create/{enquiryId} - Failed to create admission: enquiry_id=%d, error=%v",
				enquiryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admission/create/{enquiryId} - Admission created: admission_id=%d, enquiry_id=%d",
		result.ID, enquiryID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/admissions
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := ToListRequest(r)
	if err != nil {
		h.logger.Warn("GET /admissions - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, admissions.ErrInvalidStatus) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /admissions - Failed to list admissions: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/admission/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /admission/{id} - Invalid admission ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdmissionID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /admission/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/admission/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PUT /admission/{id} - Invalid admission ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdmissionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateAdmissionRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /admission/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &models.UpdateAdmissionRequest{
		ActorID: userID,
		Fields:  req.Fields,
		Status:  req.Status,
	})
	if err != nil {
		h.respondError(w, "PUT /admission/{id}", id, err)
		return
	}

	h.logger.Info("PUT /admission/{id} - Admission updated: admission_id=%d, status=%s", id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Review POST /api/admission/{id}/review (директор)
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /admission/{id}/review - Invalid admission ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdmissionID)
		return
	}

	userID, okID := middleware.GetUserID(r.Context())
	role, okRole := middleware.GetRole(r.Context())
	if !okID || !okRole {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ReviewRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /admission/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Review(r.Context(), id, &models.ReviewRequest{
		ActorID:   userID,
		ActorRole: role,
		Decision:  req.Decision,
		Remarks:   req.Remarks,
	})
	if err != nil {
		h.respondError(w, "POST /admission/{id}/review", id, err)
		return
	}

	h.logger.Info("POST /admission/{id}/review - Admission reviewed: admission_id=%d, decision=%s, reviewer=%d",
		id, req.Decision, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// AddDocument POST /api/admission/{id}/documents
func (h *Handler) AddDocument(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /admission/{id}/documents - Invalid admission ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdmissionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddDocumentRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /admission/{id}/documents - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddDocument(r.Context(), id, &models.AddDocumentRequest{
		ActorID: userID,
		Name:    req.Name,
		URL:     req.URL,
	})
	if err != nil {
		h.respondError(w, "POST /admission/{id}/documents", id, err)
		return
	}

	h.logger.Info("POST /admission/{id}/documents - Document added: admission_id=%d, document_id=%d", id, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// DeleteDocument DELETE /api/admission/{id}/documents/{docId}
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAdmissionID)
		return
	}
	docID, err := handlers.PathInt64(r, "docId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDocumentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteDocument(r.Context(), id, docID, userID); err != nil {
		h.respondError(w, "DELETE /admission/{id}/documents/{docId}", id, err)
		return
	}

	h.logger.Info("DELETE /admission/{id}/documents/{docId} - Document deleted: admission_id=%d, document_id=%d", id, docID)
	handlers.RespondMessage(w, http.StatusOK, msgDocumentDeleted)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, admissions.ErrAdmissionNotFound):
		h.logger.Warn("%s - Admission not found: admission_id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, admissions.ErrDocumentNotFound):
		handlers.RespondNotFound(w, msgDocumentNotFound)

	case errors.Is(err, admissions.ErrNotEditable):
		handlers.RespondConflict(w, msgNotEditable)

	case errors.Is(err, admissions.ErrMissingDocuments):
		h.logger.Warn("%s - Missing documents: admission_id=%d, %v", route, id, err)
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgMissingDocuments)

	case errors.Is(err, admissions.ErrCannotReview):
		handlers.RespondConflict(w, msgCannotReview)

	case errors.Is(err, admissions.ErrAccessDenied):
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, admissions.ErrInvalidStatus):
		handlers.RespondBadRequest(w, msgInvalidStatus)

	case errors.Is(err, admissions.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: admission_id=%d, %v", route, id, err)
		handlers.RespondInvalidForm(w, msgInvalidForm, err)

	default:
		h.logger.Error("%s - Failed: admission_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
