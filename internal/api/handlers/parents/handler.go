package parents

import (
	"net/http"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	slotHandlers "github.com/m04kA/SMC-AdmissionsService/internal/api/handlers/slots"
	"github.com/m04kA/SMC-AdmissionsService/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgMissingSession     = "требуется вход по коду из SMS"
)

type Handler struct {
	service ParentService
	book    BookSlotUseCase
	logger  Logger
}

func NewHandler(service ParentService, book BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		service: service,
		book:    book,
		logger:  logger,
	}
}

// Overview GET /api/parent/overview
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	mobile, ok := middleware.GetParentMobile(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	result, err := h.service.Overview(r.Context(), mobile)
	if err != nil {
		h.logger.Error("GET /parent/overview - Failed to load overview: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Book POST /api/parent/slots/{id}/book
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	mobile, ok := middleware.GetParentMobile(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	slotID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /parent/slots/{id}/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.book.Execute(r.Context(), req.ToUseCaseRequest(slotID, mobile))
	if err != nil {
		slotHandlers.RespondBookingError(w, h.logger, "POST /parent/slots/{id}/book", slotID, err)
		return
	}

	h.logger.Info("POST /parent/slots/{id}/book - Slot booked by parent: slot_id=%d, booking_id=%d",
		slotID, result.Booking.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
