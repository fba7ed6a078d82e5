package parents

import (
	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	bookSlot "github.com/m04kA/SMC-AdmissionsService/internal/usecase/book_slot"
)

// BookSlotRequest HTTP request model; дело или обращение должно принадлежать номеру сессии
// Приглашение уходит на e-mail из обращения
type BookSlotRequest struct {
	AdmissionID *int64 `json:"admissionId,omitempty"`
	EnquiryID   *int64 `json:"enquiryId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotRequest) ToUseCaseRequest(slotID int64, mobile string) *bookSlot.Request {
	return &bookSlot.Request{
		SlotID:       slotID,
		AdmissionID:  r.AdmissionID,
		EnquiryID:    r.EnquiryID,
		Actor:        domain.ParentActor(mobile),
		ParentMobile: &mobile,
	}
}
