package admissions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// AdmissionRepository интерфейс репозитория дел
type AdmissionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Admission, error)
	List(ctx context.Context, filter domain.AdmissionFilter) ([]*domain.Admission, error)
	Update(ctx context.Context, a *domain.Admission) (*domain.Admission, error)
	Review(ctx context.Context, id int64, decision domain.AdmissionStatus, remarks *string, reviewerID int64, at time.Time) (*domain.Admission, error)
	AddDocument(ctx context.Context, doc *domain.AdmissionDocument) (*domain.AdmissionDocument, error)
	DeleteDocument(ctx context.Context, admissionID, documentID int64) error
	ListDocuments(ctx context.Context, admissionID int64) ([]domain.AdmissionDocument, error)
}

// ActivityRepository интерфейс журнала действий
type ActivityRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLog) error
}

// TemplateProvider возвращает действующий шаблон анкеты
type TemplateProvider interface {
	Resolve(ctx context.Context, kind domain.TemplateKind) (*domain.FormTemplate, error)
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
