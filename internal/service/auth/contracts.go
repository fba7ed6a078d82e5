package auth

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// AdminUserRepository интерфейс репозитория сотрудников
type AdminUserRepository interface {
	Create(ctx context.Context, u *domain.AdminUser) (*domain.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	GetByID(ctx context.Context, id int64) (*domain.AdminUser, error)
	Count(ctx context.Context) (int, error)
}

// TokenIssuer выпускает токены сотрудников
type TokenIssuer interface {
	IssueAdmin(userID int64, role string) (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
