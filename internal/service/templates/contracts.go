package templates

import (
	"context"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// TemplateRepository интерфейс репозитория шаблонов
type TemplateRepository interface {
	Get(ctx context.Context, kind domain.TemplateKind) (*domain.FormTemplate, error)
	Upsert(ctx context.Context, t *domain.FormTemplate) (*domain.FormTemplate, error)
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
