package slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/api/middleware"
	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/slots"
	bookSlot "github.com/m04kA/SMC-AdmissionsService/internal/usecase/book_slot"
	cancelSlotBooking "github.com/m04kA/SMC-AdmissionsService/internal/usecase/cancel_slot_booking"
	generateDaySlots "github.com/m04kA/SMC-AdmissionsService/internal/usecase/generate_day_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidBookingID   = "некорректный ID записи"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidSlotData    = "некорректные данные слота"
	msgMissingUserID      = "требуется авторизация"
	msgSlotNotFound       = "слот не найден"
	msgSlotExists         = "слот с таким временем начала уже существует"
	msgSlotInPast         = "дата слота уже прошла"
	msgDateInPast         = "нельзя создавать слоты на прошедшую дату"
	msgBookingNotFound    = "запись не найдена"
	msgBookingCancelled   = "запись отменена"

	MsgSlotFull          = "в слоте нет свободных мест"
	MsgSlotDisabled      = "слот закрыт для записи"
	MsgSlotStarted       = "слот уже начался"
	MsgAlreadyBooked     = "по этому делу уже есть запись на консультацию"
	MsgAdmissionNotFound = "дело не найдено"
	MsgEnquiryNotFound   = "обращение не найдено"
	MsgEnquiryClosed     = "обращение закрыто"
	MsgAccessDenied      = "доступ запрещен"
	MsgInvalidBooking    = "некорректные данные записи: укажите одно из admissionId и enquiryId"
)

type Handler struct {
	service  SlotService
	book     BookSlotUseCase
	cancel   CancelBookingUseCase
	generate GenerateDaySlotsUseCase
	logger   Logger
}

func NewHandler(
	service SlotService,
	book BookSlotUseCase,
	cancel CancelBookingUseCase,
	generate GenerateDaySlotsUseCase,
	logger Logger,
) *Handler {
	return &Handler{
		service:  service,
		book:     book,
		cancel:   cancel,
		generate: generate,
		logger:   logger,
	}
}

// List GET /api/slots
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := ToListRequest(r)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, slots.ErrInvalidInput) {
			h.logger.Warn("GET /slots - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /slots - Failed to list slots: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/slots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSlotRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("POST /slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotData)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		h.respondSlotError(w, "POST /slots", 0, err)
		return
	}

	h.logger.Info("POST /slots - Slot created: slot_id=%d, date=%s, start=%s", result.ID, result.Date, result.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Generate POST /api/slots/generate
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /slots/generate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotData)
		return
	}

	result, err := h.generate.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateDaySlots.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, generateDaySlots.ErrInvalidInput):
			h.logger.Warn("POST /slots/generate - Invalid settings: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotData)

		default:
			h.logger.Error("POST /slots/generate - Failed to generate slots: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/generate - Slots generated: date=%s, created=%d, skipped=%d",
		result.Date, len(result.Created), len(result.Skipped))
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/slots/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSlotRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlotData)
		return
	}

	result, err := h.service.Update(r.Context(), id, serviceReq)
	if err != nil {
		h.respondSlotError(w, "PUT /slots/{id}", id, err)
		return
	}

	h.logger.Info("PUT /slots/{id} - Slot updated: slot_id=%d, status=%s", id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Bookings GET /api/slots/{id}/bookings
func (h *Handler) Bookings(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.ListBookings(r.Context(), id)
	if err != nil {
		h.respondSlotError(w, "GET /slots/{id}/bookings", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Book POST /api/slots/{id}/book (сотрудник записывает семью)
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /slots/{id}/book - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /slots/{id}/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.book.Execute(r.Context(), req.ToUseCaseRequest(id, userID))
	if err != nil {
		RespondBookingError(w, h.logger, "POST /slots/{id}/book", id, err)
		return
	}

	h.logger.Info("POST /slots/{id}/book - Slot booked: slot_id=%d, booking_id=%d, booked=%d/%d",
		id, result.Booking.ID, result.Slot.BookedCount, result.Slot.Capacity)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// CancelBooking DELETE /api/slots/{id}/bookings/{bookingId}
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.cancel.Execute(r.Context(), &cancelSlotBooking.Request{
		SlotID:    id,
		BookingID: bookingID,
		Actor:     domain.AdminActor(userID),
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelSlotBooking.ErrBookingNotFound):
			h.logger.Warn("DELETE /slots/{id}/bookings/{bookingId} - Booking not found: slot_id=%d, booking_id=%d",
				id, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, cancelSlotBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("DELETE /slots/{id}/bookings/{bookingId} - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/{id}/bookings/{bookingId} - Booking cancelled: slot_id=%d, booking_id=%d", id, bookingID)
	handlers.RespondEnvelope(w, http.StatusOK, handlers.Envelope{Success: true, Data: result, Message: msgBookingCancelled})
}

func (h *Handler) respondSlotError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, slots.ErrSlotNotFound):
		h.logger.Warn("%s - Slot not found: slot_id=%d", route, id)
		handlers.RespondNotFound(w, msgSlotNotFound)

	case errors.Is(err, slots.ErrSlotExists):
		handlers.RespondConflict(w, msgSlotExists)

	case errors.Is(err, slots.ErrSlotInPast):
		handlers.RespondBadRequest(w, msgSlotInPast)

	case errors.Is(err, slots.ErrInvalidInput):
		h.logger.Warn("%s - Invalid slot data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidSlotData)

	default:
		h.logger.Error("%s - Failed: slot_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}

// RespondBookingError переводит ошибки записи на слот в HTTP ответ
// Используется и кабинетом сотрудника, и порталом родителей
func RespondBookingError(w http.ResponseWriter, logger Logger, route string, slotID int64, err error) {
	switch {
	case errors.Is(err, bookSlot.ErrSlotNotFound):
		logger.Warn("%s - Slot not found: slot_id=%d", route, slotID)
		handlers.RespondNotFound(w, msgSlotNotFound)

	case errors.Is(err, bookSlot.ErrSlotFull):
		logger.Warn("%s - Slot is full: slot_id=%d", route, slotID)
		handlers.RespondConflict(w, MsgSlotFull)

	case errors.Is(err, bookSlot.ErrSlotDisabled):
		logger.Warn("%s - Slot is disabled: slot_id=%d", route, slotID)
		handlers.RespondConflict(w, MsgSlotDisabled)

	case errors.Is(err, bookSlot.ErrSlotInPast):
		handlers.RespondBadRequest(w, MsgSlotStarted)

	case errors.Is(err, bookSlot.ErrAlreadyBooked):
		handlers.RespondConflict(w, MsgAlreadyBooked)

	case errors.Is(err, bookSlot.ErrAdmissionNotFound):
		handlers.RespondNotFound(w, MsgAdmissionNotFound)

	case errors.Is(err, bookSlot.ErrEnquiryNotFound):
		handlers.RespondNotFound(w, MsgEnquiryNotFound)

	case errors.Is(err, bookSlot.ErrEnquiryClosed):
		handlers.RespondConflict(w, MsgEnquiryClosed)

	case errors.Is(err, bookSlot.ErrAccessDenied):
		logger.Warn("%s - Access denied: slot_id=%d", route, slotID)
		handlers.RespondForbidden(w, MsgAccessDenied)

	case errors.Is(err, bookSlot.ErrInvalidInput):
		handlers.RespondBadRequest(w, MsgInvalidBooking)

	default:
		logger.Error("%s - Failed to book slot: slot_id=%d, error=%v", route, slotID, err)
		handlers.RespondInternalError(w)
	}
}
