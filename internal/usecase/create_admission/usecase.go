package create_admission

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	admissionRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/admission"
	enquiryRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/enquiry"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/admissions/models"
)

// UseCase use case для открытия дела о поступлении по обращению
type UseCase struct {
	enquiryRepo   EnquiryRepository
	admissionRepo AdmissionRepository
	activityRepo  ActivityRepository
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	enquiryRepo EnquiryRepository,
	admissionRepo AdmissionRepository,
	activityRepo ActivityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		enquiryRepo:   enquiryRepo,
		admissionRepo: admissionRepo,
		activityRepo:  activityRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute открывает дело в статусе draft, копирует токен и поля, переводит обращение в converted
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.AdmissionResponse, error) {
	uc.logger.Info("CreateAdmission: enquiry=%d, actor=%d", req.EnquiryID, req.ActorID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAdmission: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Admission

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Обращение
		enquiry, err := uc.enquiryRepo.GetByID(txCtx, req.EnquiryID)
		if err != nil {
			if errors.Is(err, enquiryRepo.ErrEnquiryNotFound) {
				uc.logger.Warn("CreateAdmission: enquiry id=%d not found", req.EnquiryID)
				return ErrEnquiryNotFound
			}
			uc.logger.Error("CreateAdmission: failed to get enquiry id=%d: %v", req.EnquiryID, err)
			return fmt.Errorf("%w: failed to get enquiry: %v", ErrInternal, err)
		}
		if enquiry.Status == domain.EnquiryStatusClosed {
			uc.logger.Warn("CreateAdmission: enquiry id=%d is closed", enquiry.ID)
			return ErrEnquiryClosed
		}

		// 2. Дело; повтор отсекается уникальным индексом по enquiry_id
		created, err := uc.admissionRepo.Create(txCtx, &domain.Admission{
			EnquiryID: enquiry.ID,
			TokenID:   enquiry.TokenID,
			Status:    domain.AdmissionStatusDraft,
			Fields:    copyFields(enquiry),
		})
		if err != nil {
			if errors.Is(err, admissionRepo.ErrAdmissionExists) {
				uc.logger.Warn("CreateAdmission: admission for enquiry id=%d already exists", enquiry.ID)
				return ErrAdmissionExists
			}
			uc.logger.Error("CreateAdmission: failed to create admission: %v", err)
			return fmt.Errorf("%w: failed to create admission: %v", ErrInternal, err)
		}

		// 3. Обращение переходит в converted
		if enquiry.Status != domain.EnquiryStatusConverted {
			if _, err := uc.enquiryRepo.UpdateStatus(txCtx, enquiry.ID, domain.EnquiryStatusConverted); err != nil {
				uc.logger.Error("CreateAdmission: failed to convert enquiry id=%d: %v", enquiry.ID, err)
				return fmt.Errorf("%w: failed to update enquiry status: %v", ErrInternal, err)
			}
		}

		// 4. Журнал
		if err := uc.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      domain.AdminActor(req.ActorID),
			Action:     domain.ActionAdmissionCreated,
			EntityType: domain.EntityAdmission,
			EntityID:   created.ID,
			Details: domain.Fields{
				"enquiryId": enquiry.ID,
				"tokenId":   enquiry.TokenID,
			},
		}); err != nil {
			uc.logger.Error("CreateAdmission: failed to append activity: %v", err)
			return fmt.Errorf("%w: failed to append activity: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAdmission: admission id=%d opened for token=%s", result.ID, result.TokenID)
	return models.FromDomainAdmission(result), nil
}
