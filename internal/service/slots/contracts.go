package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.CounsellingSlot) (*domain.CounsellingSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.CounsellingSlot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.CounsellingSlot, error)
	Update(ctx context.Context, slot *domain.CounsellingSlot) (*domain.CounsellingSlot, error)
}

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	ListBySlot(ctx context.Context, slotID int64) ([]*domain.SlotBooking, error)
}

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SlotSettings, error)
	Upsert(ctx context.Context, settings *domain.SlotSettings) (*domain.SlotSettings, error)
}

// ActivityRepository интерфейс журнала действий
type ActivityRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLog) error
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
