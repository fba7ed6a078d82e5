package slots

import (
	"context"

	"github.com/m04kA/SMC-AdmissionsService/internal/service/slots/models"
	bookSlot "github.com/m04kA/SMC-AdmissionsService/internal/usecase/book_slot"
	cancelSlotBooking "github.com/m04kA/SMC-AdmissionsService/internal/usecase/cancel_slot_booking"
	generateDaySlots "github.com/m04kA/SMC-AdmissionsService/internal/usecase/generate_day_slots"
)

type SlotService interface {
	Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error)
	List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error)
	ListBookings(ctx context.Context, slotID int64) (*models.BookingListResponse, error)
}

type BookSlotUseCase interface {
	Execute(ctx context.Context, req *bookSlot.Request) (*bookSlot.Response, error)
}

type CancelBookingUseCase interface {
	Execute(ctx context.Context, req *cancelSlotBooking.Request) (*cancelSlotBooking.Response, error)
}

type GenerateDaySlotsUseCase interface {
	Execute(ctx context.Context, req *generateDaySlots.Request) (*generateDaySlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
