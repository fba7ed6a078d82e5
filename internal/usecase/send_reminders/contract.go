package send_reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	ListUpcoming(ctx context.Context, from, to time.Time) ([]*domain.BookingWithSlot, error)
	AddReminderSent(ctx context.Context, id int64, days int) error
}

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SlotSettings, error)
}

// Notifier отправляет напоминания
type Notifier interface {
	SendReminder(ctx context.Context, invite notifier.Invite, daysBefore int) error
}

// Metrics счетчик отправленных напоминаний
type Metrics interface {
	IncReminder()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
