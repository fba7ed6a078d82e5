package parents

import (
	"context"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// EnquiryRepository интерфейс репозитория обращений
type EnquiryRepository interface {
	ListByMobile(ctx context.Context, mobile string) ([]*domain.Enquiry, error)
}

// AdmissionRepository интерфейс репозитория дел о поступлении
type AdmissionRepository interface {
	ListByMobile(ctx context.Context, mobile string) ([]*domain.Admission, error)
}

// BookingRepository интерфейс репозитория записей на слоты
type BookingRepository interface {
	ListByTokenIDs(ctx context.Context, tokenIDs []string) ([]*domain.BookingWithSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
