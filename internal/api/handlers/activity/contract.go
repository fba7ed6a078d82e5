package activity

import (
	"context"

	"github.com/m04kA/SMC-AdmissionsService/internal/service/activity/models"
)

type ActivityService interface {
	List(ctx context.Context, req *models.ListActivityRequest) (*models.ActivityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
