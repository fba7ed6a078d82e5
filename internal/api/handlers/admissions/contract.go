package admissions

import (
	"context"

	"github.com/m04kA/SMC-AdmissionsService/internal/service/admissions/models"
	createAdmission "github.com/m04kA/SMC-AdmissionsService/internal/usecase/create_admission"
)

type AdmissionService interface {
	GetByID(ctx context.Context, id int64) (*models.AdmissionResponse, error)
	List(ctx context.Context, req *models.ListAdmissionsRequest) (*models.AdmissionListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateAdmissionRequest) (*models.AdmissionResponse, error)
	AddDocument(ctx context.Context, admissionID int64, req *models.AddDocumentRequest) (*models.DocumentResponse, error)
	DeleteDocument(ctx context.Context, admissionID, documentID, actorID int64) error
	Review(ctx context.Context, id int64, req *models.ReviewRequest) (*models.AdmissionResponse, error)
}

type CreateAdmissionUseCase interface {
	Execute(ctx context.Context, req *createAdmission.Request) (*models.AdmissionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
