package create_admission

import (
	"context"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// EnquiryRepository интерфейс репозитория обращений
type EnquiryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Enquiry, error)
	UpdateStatus(ctx context.Context, id int64, status domain.EnquiryStatus) (*domain.Enquiry, error)
}

// AdmissionRepository интерфейс репозитория дел о поступлении
type AdmissionRepository interface {
	Create(ctx context.Context, a *domain.Admission) (*domain.Admission, error)
}

// ActivityRepository интерфейс журнала действий
type ActivityRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLog) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
