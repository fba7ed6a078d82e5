package otp

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// OTPRepository интерфейс репозитория кодов
type OTPRepository interface {
	Create(ctx context.Context, o *domain.OTP) (*domain.OTP, error)
	GetLatestActive(ctx context.Context, mobile string, now time.Time) (*domain.OTP, error)
	IncrementAttempts(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) error
	DeleteByMobile(ctx context.Context, mobile string) error
}

// Notifier доставляет код родителю
type Notifier interface {
	SendOTP(ctx context.Context, mobile, code string, ttl time.Duration) error
}

// SessionIssuer выпускает токен родительской сессии
type SessionIssuer interface {
	IssueParent(mobile string) (string, time.Time, error)
}

// CodeGenerator генератор шестизначных кодов
type CodeGenerator interface {
	OTP() string
}

// Metrics счетчики исходов операций с кодами
type Metrics interface {
	IncOTP(event string)
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
