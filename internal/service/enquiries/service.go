package enquiries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	enquiryRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/enquiry"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/enquiries/models"
)

// Service сервис обращений
type Service struct {
	enquiryRepo  EnquiryRepository
	activityRepo ActivityRepository
	templates    TemplateProvider
	tokens       TokenGenerator
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса обращений
func NewService(
	enquiryRepo EnquiryRepository,
	activityRepo ActivityRepository,
	templates TemplateProvider,
	tokens TokenGenerator,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		enquiryRepo:  enquiryRepo,
		activityRepo: activityRepo,
		templates:    templates,
		tokens:       tokens,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Submit принимает анкету обращения с сайта
// Дополнительные поля проверяются по шаблону enquiry, токен генерируется без проверки коллизий
func (s *Service) Submit(ctx context.Context, req *models.SubmitEnquiryRequest) (*models.EnquiryResponse, error) {
	s.logger.Info("Submit: new enquiry from mobile=%s, grade=%s", req.Mobile, req.Grade)

	template, err := s.templates.Resolve(ctx, domain.TemplateEnquiry)
	if err != nil {
		s.logger.Error("Submit: failed to resolve enquiry template: %v", err)
		return nil, fmt.Errorf("%w: Submit - resolve template: %v", ErrInternal, err)
	}

	fields := domain.Fields(req.Fields)
	if fields == nil {
		fields = domain.Fields{}
	}
	if fieldErrs := template.Validate(fields); len(fieldErrs) > 0 {
		s.logger.Warn("Submit: enquiry form has %d invalid fields", len(fieldErrs))
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.FieldErrors(fieldErrs))
	}

	now := s.timeProvider.Now()
	enquiry := &domain.Enquiry{
		TokenID:     s.tokens.TokenID(now),
		ParentName:  strings.TrimSpace(req.ParentName),
		StudentName: strings.TrimSpace(req.StudentName),
		Mobile:      strings.TrimSpace(req.Mobile),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Grade:       strings.TrimSpace(req.Grade),
		Status:      domain.EnquiryStatusNew,
		Fields:      fields,
	}

	var created *domain.Enquiry
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.enquiryRepo.Create(txCtx, enquiry)
		if err != nil {
			return err
		}
		return s.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      domain.ParentActor(created.Mobile),
			Action:     domain.ActionEnquirySubmitted,
			EntityType: domain.EntityEnquiry,
			EntityID:   created.ID,
			Details:    domain.Fields{"tokenId": created.TokenID, "grade": created.Grade},
		})
	})
	if err != nil {
		if errors.Is(err, enquiryRepo.ErrDuplicateToken) {
			s.logger.Warn("Submit: token id=%s collided", enquiry.TokenID)
			return nil, ErrTokenCollision
		}
		s.logger.Error("Submit: repository error: %v", err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Submit: created enquiry id=%d, token=%s", created.ID, created.TokenID)
	return models.FromDomainEnquiry(created), nil
}

// GetByID получает обращение по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EnquiryResponse, error) {
	enquiry, err := s.enquiryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapGetError("GetByID", fmt.Sprintf("id=%d", id), err)
	}
	return models.FromDomainEnquiry(enquiry), nil
}

// GetByTokenID получает обращение по токену
func (s *Service) GetByTokenID(ctx context.Context, tokenID string) (*models.EnquiryResponse, error) {
	enquiry, err := s.enquiryRepo.GetByTokenID(ctx, tokenID)
	if err != nil {
		return nil, s.mapGetError("GetByTokenID", "token="+tokenID, err)
	}
	return models.FromDomainEnquiry(enquiry), nil
}

// List получает обращения по фильтру
func (s *Service) List(ctx context.Context, req *models.ListEnquiriesRequest) (*models.EnquiryListResponse, error) {
	filter := domain.EnquiryFilter{
		Grade:  req.Grade,
		Search: req.Search,
		From:   req.From,
		To:     req.To,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Status != nil {
		status := domain.EnquiryStatus(*req.Status)
		if !status.IsValid() {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, ErrInvalidStatus
		}
		filter.Status = &status
	}

	list, err := s.enquiryRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEnquiryList(list), nil
}

// UpdateStatus меняет статус обращения сотрудником
// Статус converted выставляется только при открытии дела
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.EnquiryResponse, error) {
	s.logger.Info("UpdateStatus: enquiry id=%d -> %s by admin=%d", id, req.Status, req.ActorID)

	status := domain.EnquiryStatus(req.Status)
	if !status.IsValid() || status == domain.EnquiryStatusConverted {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, ErrInvalidStatus
	}

	var updated *domain.Enquiry
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.enquiryRepo.UpdateStatus(txCtx, id, status)
		if err != nil {
			return err
		}
		return s.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      domain.AdminActor(req.ActorID),
			Action:     domain.ActionEnquiryStatus,
			EntityType: domain.EntityEnquiry,
			EntityID:   id,
			Details:    domain.Fields{"status": req.Status},
		})
	})
	if err != nil {
		return nil, s.mapGetError("UpdateStatus", fmt.Sprintf("id=%d", id), err)
	}

	s.logger.Info("UpdateStatus: enquiry id=%d is now %s", id, status)
	return models.FromDomainEnquiry(updated), nil
}

func (s *Service) mapGetError(op, key string, err error) error {
	if errors.Is(err, enquiryRepo.ErrEnquiryNotFound) {
		s.logger.Warn("%s: enquiry %s not found", op, key)
		return ErrEnquiryNotFound
	}
	s.logger.Error("%s: repository error for enquiry %s: %v", op, key, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
