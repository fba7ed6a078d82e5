package templates

import (
	"context"

	"github.com/m04kA/SMC-AdmissionsService/internal/service/templates/models"
)

type TemplateService interface {
	Get(ctx context.Context, kind string) (*models.TemplateResponse, error)
	Update(ctx context.Context, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
