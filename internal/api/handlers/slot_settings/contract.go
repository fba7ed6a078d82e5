package slot_settings

import (
	"context"

	"github.com/m04kA/SMC-AdmissionsService/internal/service/slots/models"
)

type SettingsService interface {
	GetSettings(ctx context.Context) (*models.SettingsResponse, error)
	UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
