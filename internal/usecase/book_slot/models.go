package book_slot

import (
	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	slotModels "github.com/m04kA/SMC-AdmissionsService/internal/service/slots/models"
)

// Request модель запроса на запись
// Указывается ровно одно из AdmissionID и EnquiryID
type Request struct {
	SlotID      int64
	AdmissionID *int64
	EnquiryID   *int64
	ParentEmail *string // по умолчанию e-mail из обращения

	Actor        domain.Actor
	ParentMobile *string // телефон из родительской сессии; дело должно принадлежать этому номеру
}

// Response созданная запись и слот после увеличения счетчика
type Response struct {
	Booking slotModels.BookingResponse `json:"booking"`
	Slot    slotModels.SlotResponse    `json:"slot"`
}

// subject кого записываем: обращение и, если есть, дело
type subject struct {
	enquiry   *domain.Enquiry
	admission *domain.Admission
}

func (s subject) tokenID() string {
	if s.admission != nil {
		return s.admission.TokenID
	}
	return s.enquiry.TokenID
}
