package book_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/internal/integrations/notifier"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CounsellingSlot, error)
	IncrementBooked(ctx context.Context, id int64) (*domain.CounsellingSlot, error)
}

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.SlotBooking) (*domain.SlotBooking, error)
	MarkInvites(ctx context.Context, id int64, calendarSent, principalSent bool) error
}

// AdmissionRepository интерфейс репозитория дел о поступлении
type AdmissionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Admission, error)
}

// EnquiryRepository интерфейс репозитория обращений
type EnquiryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Enquiry, error)
}

// ActivityRepository интерфейс журнала действий
type ActivityRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLog) error
}

// Notifier отправляет приглашения на встречу
type Notifier interface {
	SendCalendarInvite(ctx context.Context, invite notifier.Invite) error
	SendPrincipalInvite(ctx context.Context, invite notifier.Invite) error
}

// Metrics счетчик исходов записи
type Metrics interface {
	IncSlotBooking(result string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
