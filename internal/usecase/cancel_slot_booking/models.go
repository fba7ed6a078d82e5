package cancel_slot_booking

import (
	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	slotModels "github.com/m04kA/SMC-AdmissionsService/internal/service/slots/models"
)

// Request модель запроса на отмену записи
type Request struct {
	SlotID    int64
	BookingID int64
	Actor     domain.Actor
}

// Response слот после освобождения места
type Response struct {
	Slot slotModels.SlotResponse `json:"slot"`
}
