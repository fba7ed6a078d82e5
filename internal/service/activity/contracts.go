package activity

import (
	"context"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// ActivityRepository интерфейс журнала действий
type ActivityRepository interface {
	List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
