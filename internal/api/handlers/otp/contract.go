package otp

import (
	"context"

	"github.com/m04kA/SMC-AdmissionsService/internal/service/otp/models"
)

type OTPService interface {
	Send(ctx context.Context, mobile string) (*models.SendResponse, error)
	Verify(ctx context.Context, mobile, code string) (*models.VerifyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
