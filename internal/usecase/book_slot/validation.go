package book_slot

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if (req.AdmissionID == nil) == (req.EnquiryID == nil) {
		return fmt.Errorf("%w: exactly one of admissionId and enquiryId is required", ErrInvalidInput)
	}

	if req.AdmissionID != nil && *req.AdmissionID <= 0 {
		return fmt.Errorf("%w: admissionId must be positive", ErrInvalidInput)
	}

	if req.EnquiryID != nil && *req.EnquiryID <= 0 {
		return fmt.Errorf("%w: enquiryId must be positive", ErrInvalidInput)
	}

	if req.ParentEmail != nil {
		if _, err := mail.ParseAddress(strings.TrimSpace(*req.ParentEmail)); err != nil {
			return fmt.Errorf("%w: invalid parentEmail", ErrInvalidInput)
		}
	}

	return nil
}

// validateNotStarted проверяет, что слот еще не начался
// Сравнение по дате и времени суток, без часовых поясов
func validateNotStarted(slot *domain.CounsellingSlot, now time.Time) error {
	if isDateInPast(slot.Date, now) {
		return ErrSlotInPast
	}

	if isSameDay(slot.Date, now) && !slot.StartTime.IsAfter(types.NewTimeString(now)) {
		return ErrSlotInPast
	}

	return nil
}

// classifyUnavailable объясняет, почему условное обновление счетчика не прошло
func classifyUnavailable(slot *domain.CounsellingSlot) error {
	switch slot.Status() {
	case domain.SlotStatusFull:
		return ErrSlotFull
	case domain.SlotStatusDisabled:
		return ErrSlotDisabled
	default:
		// слот освободился между попыткой и перечитыванием
		return ErrSlotFull
	}
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
