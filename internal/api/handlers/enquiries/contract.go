package enquiries

import (
	"context"

	"github.com/m04kA/SMC-AdmissionsService/internal/service/enquiries/models"
)

type EnquiryService interface {
	Submit(ctx context.Context, req *models.SubmitEnquiryRequest) (*models.EnquiryResponse, error)
	GetByID(ctx context.Context, id int64) (*models.EnquiryResponse, error)
	GetByTokenID(ctx context.Context, tokenID string) (*models.EnquiryResponse, error)
	List(ctx context.Context, req *models.ListEnquiriesRequest) (*models.EnquiryListResponse, error)
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.EnquiryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
