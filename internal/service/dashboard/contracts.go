package dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// EnquiryCounter счетчик обращений по статусам
type EnquiryCounter interface {
	CountByStatus(ctx context.Context) (map[domain.EnquiryStatus]int, error)
}

// AdmissionCounter счетчик дел по статусам
type AdmissionCounter interface {
	CountByStatus(ctx context.Context) (map[domain.AdmissionStatus]int, error)
}

// SlotCounter счетчик предстоящих слотов
type SlotCounter interface {
	CountUpcoming(ctx context.Context, from time.Time) (int, error)
}

// BookingCounter счетчик предстоящих записей
type BookingCounter interface {
	CountUpcoming(ctx context.Context, from time.Time) (int, error)
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
