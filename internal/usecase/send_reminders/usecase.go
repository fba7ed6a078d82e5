package send_reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AdmissionsService/internal/integrations/notifier"
)

// UseCase use case для рассылки напоминаний о собеседованиях
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute для каждого дня из настроек находит записи на дату через столько дней
// и отправляет напоминание, если оно еще не отправлялось
// Ошибка доставки одной записи не прерывает проход; повтор будет при следующем запуске
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	settings := domain.DefaultSlotSettings()
	stored, err := uc.settingsRepo.Get(ctx)
	switch {
	case err == nil:
		settings = *stored
	case errors.Is(err, settingsRepo.ErrSettingsNotFound):
	default:
		uc.logger.Error("SendReminders: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	resp := &Response{}

	for _, days := range settings.ReminderDays {
		target := today.AddDate(0, 0, days)

		bookings, err := uc.bookingRepo.ListUpcoming(ctx, target, target)
		if err != nil {
			uc.logger.Error("SendReminders: failed to list bookings for %s: %v", target.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}

		for _, item := range bookings {
			resp.Checked++
			if item.Booking.HasReminder(days) {
				continue
			}

			if err := uc.remind(ctx, item, days); err != nil {
				uc.logger.Warn("SendReminders: booking id=%d, %d day(s) before: %v", item.Booking.ID, days, err)
				resp.Failed++
				continue
			}
			resp.Sent++
		}
	}

	uc.logger.Info("SendReminders: checked=%d, sent=%d, failed=%d", resp.Checked, resp.Sent, resp.Failed)
	return resp, nil
}

func (uc *UseCase) remind(ctx context.Context, item *domain.BookingWithSlot, days int) error {
	invite := notifier.Invite{
		BookingID:   item.Booking.ID,
		TokenID:     item.Booking.TokenID,
		ParentEmail: item.Booking.ParentEmail,
		Date:        item.Slot.Date,
		StartTime:   item.Slot.StartTime.String(),
		EndTime:     item.Slot.EndTime.String(),
	}

	if err := uc.notifier.SendReminder(ctx, invite, days); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	uc.metrics.IncReminder()

	if err := uc.bookingRepo.AddReminderSent(ctx, item.Booking.ID, days); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	return nil
}
