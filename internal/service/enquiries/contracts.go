package enquiries

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// EnquiryRepository интерфейс репозитория обращений
type EnquiryRepository interface {
	Create(ctx context.Context, e *domain.Enquiry) (*domain.Enquiry, error)
	GetByID(ctx context.Context, id int64) (*domain.Enquiry, error)
	GetByTokenID(ctx context.Context, tokenID string) (*domain.Enquiry, error)
	List(ctx context.Context, filter domain.EnquiryFilter) ([]*domain.Enquiry, error)
	UpdateStatus(ctx context.Context, id int64, status domain.EnquiryStatus) (*domain.Enquiry, error)
}

// ActivityRepository интерфейс журнала действий
type ActivityRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLog) error
}

// TemplateProvider возвращает действующий шаблон анкеты
type TemplateProvider interface {
	Resolve(ctx context.Context, kind domain.TemplateKind) (*domain.FormTemplate, error)
}

// TokenGenerator генератор токенов обращений
type TokenGenerator interface {
	TokenID(now time.Time) string
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
