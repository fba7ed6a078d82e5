package parents

import (
	"context"

	"github.com/m04kA/SMC-AdmissionsService/internal/service/parents/models"
	bookSlot "github.com/m04kA/SMC-AdmissionsService/internal/usecase/book_slot"
)

type ParentService interface {
	Overview(ctx context.Context, mobile string) (*models.OverviewResponse, error)
}

type BookSlotUseCase interface {
	Execute(ctx context.Context, req *bookSlot.Request) (*bookSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
