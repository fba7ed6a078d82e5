package models

import (
	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	admissionModels "github.com/m04kA/SMC-AdmissionsService/internal/service/admissions/models"
	enquiryModels "github.com/m04kA/SMC-AdmissionsService/internal/service/enquiries/models"
	slotModels "github.com/m04kA/SMC-AdmissionsService/internal/service/slots/models"
)

// BookingWithSlotResponse запись родителя вместе со слотом
type BookingWithSlotResponse struct {
	Booking slotModels.BookingResponse `json:"booking"`
	Slot    slotModels.SlotResponse    `json:"slot"`
}

// OverviewResponse все, что видит родитель в личном кабинете
type OverviewResponse struct {
	Mobile     string                              `json:"mobile"`
	Enquiries  []enquiryModels.EnquiryResponse     `json:"enquiries"`
	Admissions []admissionModels.AdmissionResponse `json:"admissions"`
	Bookings   []BookingWithSlotResponse           `json:"bookings"`
}

// FromDomainBookingWithSlot конвертирует запись со слотом
func FromDomainBookingWithSlot(b *domain.BookingWithSlot) BookingWithSlotResponse {
	return BookingWithSlotResponse{
		Booking: *slotModels.FromDomainBooking(&b.Booking),
		Slot:    *slotModels.FromDomainSlot(&b.Slot),
	}
}
