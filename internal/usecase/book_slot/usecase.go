package book_slot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	admissionRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/admission"
	bookingRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/booking"
	enquiryRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/enquiry"
	slotRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AdmissionsService/internal/integrations/notifier"
	slotModels "github.com/m04kA/SMC-AdmissionsService/internal/service/slots/models"
)

// Исходы записи для метрик
const (
	resultBooked    = "booked"
	resultFull      = "full"
	resultDisabled  = "disabled"
	resultDuplicate = "duplicate"
	resultRejected  = "rejected"
)

// UseCase use case для записи на слот собеседования
type UseCase struct {
	slotRepo      SlotRepository
	bookingRepo   BookingRepository
	admissionRepo AdmissionRepository
	enquiryRepo   EnquiryRepository
	activityRepo  ActivityRepository
	notifier      Notifier
	metrics       Metrics
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	admissionRepo AdmissionRepository,
	enquiryRepo EnquiryRepository,
	activityRepo ActivityRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		bookingRepo:   bookingRepo,
		admissionRepo: admissionRepo,
		enquiryRepo:   enquiryRepo,
		activityRepo:  activityRepo,
		notifier:      notifier,
		metrics:       metrics,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет запись на слот
// Счетчик мест увеличивается условным UPDATE в одной транзакции со вставкой записи,
// поэтому booked_count никогда не превышает capacity и не расходится с числом записей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: slot=%d, admission=%v, enquiry=%v, actor=%s",
		req.SlotID, req.AdmissionID, req.EnquiryID, req.Actor.Type)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		uc.metrics.IncSlotBooking(resultRejected)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Определяем, кого записываем
	subj, err := uc.resolveSubject(ctx, req)
	if err != nil {
		uc.metrics.IncSlotBooking(resultRejected)
		return nil, err
	}

	// 3. Родитель может записать только свое дело
	if req.ParentMobile != nil && subj.enquiry.Mobile != *req.ParentMobile {
		uc.logger.Warn("BookSlot: mobile=%s tried to book enquiry id=%d", *req.ParentMobile, subj.enquiry.ID)
		uc.metrics.IncSlotBooking(resultRejected)
		return nil, ErrAccessDenied
	}

	// родительская сессия не меняет адрес приглашения, берется e-mail обращения
	parentEmail := strings.ToLower(strings.TrimSpace(subj.enquiry.Email))
	if req.ParentEmail != nil && req.Actor.Type != domain.ActorParent {
		parentEmail = strings.ToLower(strings.TrimSpace(*req.ParentEmail))
	}
	if parentEmail == "" {
		uc.metrics.IncSlotBooking(resultRejected)
		return nil, fmt.Errorf("%w: parent email is required", ErrInvalidInput)
	}

	// 4. Слот должен существовать и еще не начаться
	slot, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("BookSlot: slot id=%d not found", req.SlotID)
			uc.metrics.IncSlotBooking(resultRejected)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("BookSlot: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}
	if err := validateNotStarted(slot, now); err != nil {
		uc.logger.Warn("BookSlot: slot id=%d on %s %s has already started",
			slot.ID, slot.Date.Format(domain.DateFormat), slot.StartTime)
		uc.metrics.IncSlotBooking(resultRejected)
		return nil, err
	}

	var (
		booking *domain.SlotBooking
		updated *domain.CounsellingSlot
	)

	// 5. Занимаем место и создаем запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 5.1. Условное увеличение счетчика (нет строки = слот полон, отключен или удален)
		incremented, err := uc.slotRepo.IncrementBooked(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotUnavailable) {
				return uc.explainUnavailable(txCtx, req.SlotID)
			}
			uc.logger.Error("BookSlot: failed to take a seat in slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to increment booked count: %v", ErrInternal, err)
		}

		// 5.2. Создаем запись; уникальные индексы отсекают повторную запись
		enquiryID := subj.enquiry.ID
		created, err := uc.bookingRepo.Create(txCtx, &domain.SlotBooking{
			SlotID:      req.SlotID,
			AdmissionID: req.AdmissionID,
			EnquiryID:   &enquiryID,
			TokenID:     subj.tokenID(),
			ParentEmail: parentEmail,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrAlreadyBooked) {
				uc.logger.Warn("BookSlot: token=%s already has a booking", subj.tokenID())
				return ErrAlreadyBooked
			}
			uc.logger.Error("BookSlot: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 5.3. Журнал
		if err := uc.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      req.Actor,
			Action:     domain.ActionSlotBooked,
			EntityType: domain.EntityBooking,
			EntityID:   created.ID,
			Details: domain.Fields{
				"slotId":      req.SlotID,
				"tokenId":     created.TokenID,
				"bookedCount": incremented.BookedCount,
				"capacity":    incremented.Capacity,
			},
		}); err != nil {
			uc.logger.Error("BookSlot: failed to append activity: %v", err)
			return fmt.Errorf("%w: failed to append activity: %v", ErrInternal, err)
		}

		booking = created
		updated = incremented
		return nil
	})
	if err != nil {
		uc.metrics.IncSlotBooking(bookingResult(err))
		return nil, err
	}

	uc.metrics.IncSlotBooking(resultBooked)
	uc.logger.Info("BookSlot: booking id=%d created, slot id=%d now %d/%d (%s)",
		booking.ID, updated.ID, updated.BookedCount, updated.Capacity, updated.Status())

	// 6. Приглашения отправляются после коммита; сбой доставки не отменяет запись
	uc.sendInvites(ctx, booking, updated, subj)

	return &Response{
		Booking: *slotModels.FromDomainBooking(booking),
		Slot:    *slotModels.FromDomainSlot(updated),
	}, nil
}

// resolveSubject находит обращение (и дело, если запись по делу)
func (uc *UseCase) resolveSubject(ctx context.Context, req *Request) (subject, error) {
	var subj subject

	var enquiryID int64
	if req.AdmissionID != nil {
		admission, err := uc.admissionRepo.GetByID(ctx, *req.AdmissionID)
		if err != nil {
			if errors.Is(err, admissionRepo.ErrAdmissionNotFound) {
				uc.logger.Warn("BookSlot: admission id=%d not found", *req.AdmissionID)
				return subj, ErrAdmissionNotFound
			}
			uc.logger.Error("BookSlot: failed to get admission id=%d: %v", *req.AdmissionID, err)
			return subj, fmt.Errorf("%w: failed to get admission: %v", ErrInternal, err)
		}
		subj.admission = admission
		enquiryID = admission.EnquiryID
	} else {
		enquiryID = *req.EnquiryID
	}

	enquiry, err := uc.enquiryRepo.GetByID(ctx, enquiryID)
	if err != nil {
		if errors.Is(err, enquiryRepo.ErrEnquiryNotFound) {
			uc.logger.Warn("BookSlot: enquiry id=%d not found", enquiryID)
			return subj, ErrEnquiryNotFound
		}
		uc.logger.Error("BookSlot: failed to get enquiry id=%d: %v", enquiryID, err)
		return subj, fmt.Errorf("%w: failed to get enquiry: %v", ErrInternal, err)
	}
	if enquiry.Status == domain.EnquiryStatusClosed {
		uc.logger.Warn("BookSlot: enquiry id=%d is closed", enquiry.ID)
		return subj, ErrEnquiryClosed
	}
	subj.enquiry = enquiry

	return subj, nil
}

// explainUnavailable перечитывает слот, чтобы вернуть точную причину отказа
func (uc *UseCase) explainUnavailable(ctx context.Context, slotID int64) error {
	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		uc.logger.Error("BookSlot: failed to re-read slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: failed to re-read slot: %v", ErrInternal, err)
	}

	reason := classifyUnavailable(slot)
	uc.logger.Warn("BookSlot: slot id=%d unavailable (%d/%d, disabled=%t): %v",
		slot.ID, slot.BookedCount, slot.Capacity, slot.Disabled, reason)
	return reason
}

// sendInvites отправляет приглашения родителю и директору и сохраняет флаги
func (uc *UseCase) sendInvites(ctx context.Context, booking *domain.SlotBooking, slot *domain.CounsellingSlot, subj subject) {
	invite := notifier.Invite{
		BookingID:   booking.ID,
		TokenID:     booking.TokenID,
		ParentEmail: booking.ParentEmail,
		ParentName:  subj.enquiry.ParentName,
		StudentName: subj.enquiry.StudentName,
		Mobile:      subj.enquiry.Mobile,
		Date:        slot.Date,
		StartTime:   slot.StartTime.String(),
		EndTime:     slot.EndTime.String(),
	}

	calendarSent := true
	if err := uc.notifier.SendCalendarInvite(ctx, invite); err != nil {
		uc.logger.Error("BookSlot: failed to send calendar invite for booking id=%d: %v", booking.ID, err)
		calendarSent = false
	}

	principalSent := true
	if err := uc.notifier.SendPrincipalInvite(ctx, invite); err != nil {
		uc.logger.Error("BookSlot: failed to send principal invite for booking id=%d: %v", booking.ID, err)
		principalSent = false
	}

	if !calendarSent && !principalSent {
		return
	}

	if err := uc.bookingRepo.MarkInvites(ctx, booking.ID, calendarSent, principalSent); err != nil {
		uc.logger.Error("BookSlot: failed to mark invites for booking id=%d: %v", booking.ID, err)
		return
	}
	booking.CalendarInviteSent = calendarSent
	booking.PrincipalInviteSent = principalSent
}

// bookingResult исход для метрики по ошибке транзакции
func bookingResult(err error) string {
	switch {
	case errors.Is(err, ErrSlotFull):
		return resultFull
	case errors.Is(err, ErrSlotDisabled):
		return resultDisabled
	case errors.Is(err, ErrAlreadyBooked):
		return resultDuplicate
	default:
		return resultRejected
	}
}
