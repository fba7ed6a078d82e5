package cancel_slot_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/slot"
	slotModels "github.com/m04kA/SMC-AdmissionsService/internal/service/slots/models"
)

// UseCase use case для отмены записи на слот
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	activityRepo ActivityRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	activityRepo ActivityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute удаляет запись и освобождает место в одной транзакции
// Слот снова становится available, если он не отключен вручную
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelSlotBooking: slot=%d, booking=%d", req.SlotID, req.BookingID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelSlotBooking: validation failed: %v", err)
		return nil, err
	}

	var slot *domain.CounsellingSlot

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Запись должна принадлежать слоту из пути
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelSlotBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelSlotBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if booking.SlotID != req.SlotID {
			uc.logger.Warn("CancelSlotBooking: booking id=%d belongs to slot id=%d, not %d",
				booking.ID, booking.SlotID, req.SlotID)
			return ErrBookingNotFound
		}

		// 2. Удаляем запись
		if err := uc.bookingRepo.Delete(txCtx, booking.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelSlotBooking: failed to delete booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to delete booking: %v", ErrInternal, err)
		}

		// 3. Освобождаем место; счетчик уже на нуле означает рассинхронизацию, отмену не блокируем
		slot, err = uc.slotRepo.DecrementBooked(txCtx, booking.SlotID)
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Error("CancelSlotBooking: booked count of slot id=%d is already zero", booking.SlotID)
			slot, err = uc.slotRepo.GetByID(txCtx, booking.SlotID)
		}
		if err != nil {
			uc.logger.Error("CancelSlotBooking: failed to release seat in slot id=%d: %v", booking.SlotID, err)
			return fmt.Errorf("%w: failed to decrement booked count: %v", ErrInternal, err)
		}

		// 4. Журнал
		if err := uc.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      req.Actor,
			Action:     domain.ActionSlotBookingCanceled,
			EntityType: domain.EntityBooking,
			EntityID:   booking.ID,
			Details: domain.Fields{
				"slotId":      booking.SlotID,
				"tokenId":     booking.TokenID,
				"bookedCount": slot.BookedCount,
			},
		}); err != nil {
			uc.logger.Error("CancelSlotBooking: failed to append activity: %v", err)
			return fmt.Errorf("%w: failed to append activity: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelSlotBooking: booking id=%d cancelled, slot id=%d now %d/%d (%s)",
		req.BookingID, slot.ID, slot.BookedCount, slot.Capacity, slot.Status())

	return &Response{Slot: *slotModels.FromDomainSlot(slot)}, nil
}
