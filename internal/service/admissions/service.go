package admissions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	admissionRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/admission"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/admissions/models"
)

// Service сервис дел о поступлении
type Service struct {
	admissionRepo AdmissionRepository
	activityRepo  ActivityRepository
	templates     TemplateProvider
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса дел
func NewService(
	admissionRepo AdmissionRepository,
	activityRepo ActivityRepository,
	templates TemplateProvider,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		admissionRepo: admissionRepo,
		activityRepo:  activityRepo,
		templates:     templates,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает дело вместе с документами и списком недостающих документов
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AdmissionResponse, error) {
	admission, err := s.load(ctx, id)
	if err != nil {
		return nil, s.mapError("GetByID", id, err)
	}

	resp := models.FromDomainAdmission(admission)

	docsTemplate, err := s.templates.Resolve(ctx, domain.TemplateDocuments)
	if err != nil {
		s.logger.Error("GetByID: failed to resolve documents template: %v", err)
		return nil, fmt.Errorf("%w: GetByID - resolve template: %v", ErrInternal, err)
	}
	resp.MissingDocuments = admission.MissingDocuments(docsTemplate.RequiredNames())

	return resp, nil
}

// List получает дела по фильтру
func (s *Service) List(ctx context.Context, req *models.ListAdmissionsRequest) (*models.AdmissionListResponse, error) {
	filter := domain.AdmissionFilter{Search: req.Search, Limit: req.Limit, Offset: req.Offset}
	if req.Status != nil {
		status := domain.AdmissionStatus(*req.Status)
		if !status.IsValid() {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, ErrInvalidStatus
		}
		filter.Status = &status
	}

	list, err := s.admissionRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAdmissionList(list), nil
}

// Update дополняет анкету дела и при необходимости подает его директору
// Подача требует заполненной анкеты admission и всех обязательных документов
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateAdmissionRequest) (*models.AdmissionResponse, error) {
	s.logger.Info("Update: updating admission id=%d by admin=%d", id, req.ActorID)

	var target *domain.AdmissionStatus
	if req.Status != nil {
		status := domain.AdmissionStatus(*req.Status)
		if status != domain.AdmissionStatusDraft && status != domain.AdmissionStatusSubmitted {
			s.logger.Warn("Update: status=%s cannot be set directly", *req.Status)
			return nil, ErrInvalidStatus
		}
		target = &status
	}

	var updated *domain.Admission
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		admission, err := s.load(txCtx, id)
		if err != nil {
			return err
		}
		if !admission.CanBeEdited() {
			return ErrNotEditable
		}

		admission.Fields = admission.Fields.Merge(domain.Fields(req.Fields))

		action := domain.ActionAdmissionUpdated
		if target != nil && *target != admission.Status {
			if *target == domain.AdmissionStatusSubmitted {
				if err := s.checkReadyToSubmit(txCtx, admission); err != nil {
					return err
				}
				now := s.timeProvider.Now()
				admission.SubmittedAt = &now
				action = domain.ActionAdmissionSubmitted
			} else {
				admission.SubmittedAt = nil
			}
			admission.Status = *target
		}

		updated, err = s.admissionRepo.Update(txCtx, admission)
		if err != nil {
			return err
		}

		return s.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      domain.AdminActor(req.ActorID),
			Action:     action,
			EntityType: domain.EntityAdmission,
			EntityID:   id,
			Details:    domain.Fields{"status": string(updated.Status)},
		})
	})
	if err != nil {
		return nil, s.mapError("Update", id, err)
	}

	s.logger.Info("Update: admission id=%d saved with status=%s", id, updated.Status)
	return models.FromDomainAdmission(updated), nil
}

// AddDocument прикрепляет документ к делу
func (s *Service) AddDocument(ctx context.Context, admissionID int64, req *models.AddDocumentRequest) (*models.DocumentResponse, error) {
	name := strings.TrimSpace(req.Name)
	url := strings.TrimSpace(req.URL)
	if name == "" || url == "" {
		return nil, fmt.Errorf("%w: name and url are required", ErrInvalidInput)
	}
	if len(name) > domain.MaxDocumentNameLength {
		return nil, fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxDocumentNameLength)
	}

	var created *domain.AdmissionDocument
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		admission, err := s.admissionRepo.GetByID(txCtx, admissionID)
		if err != nil {
			return err
		}
		if !admission.CanBeEdited() {
			return ErrNotEditable
		}

		created, err = s.admissionRepo.AddDocument(txCtx, &domain.AdmissionDocument{
			AdmissionID: admissionID,
			Name:        name,
			URL:         url,
		})
		if err != nil {
			return err
		}

		return s.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      domain.AdminActor(req.ActorID),
			Action:     domain.ActionDocumentAdded,
			EntityType: domain.EntityAdmission,
			EntityID:   admissionID,
			Details:    domain.Fields{"document": name},
		})
	})
	if err != nil {
		return nil, s.mapError("AddDocument", admissionID, err)
	}

	s.logger.Info("AddDocument: document %q added to admission id=%d", name, admissionID)
	doc := models.FromDomainDocument(*created)
	return &doc, nil
}

// DeleteDocument удаляет документ дела
func (s *Service) DeleteDocument(ctx context.Context, admissionID, documentID, actorID int64) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		admission, err := s.admissionRepo.GetByID(txCtx, admissionID)
		if err != nil {
			return err
		}
		if !admission.CanBeEdited() {
			return ErrNotEditable
		}

		if err := s.admissionRepo.DeleteDocument(txCtx, admissionID, documentID); err != nil {
			return err
		}

		return s.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      domain.AdminActor(actorID),
			Action:     domain.ActionDocumentRemoved,
			EntityType: domain.EntityAdmission,
			EntityID:   admissionID,
			Details:    domain.Fields{"documentId": documentID},
		})
	})
	if err != nil {
		return s.mapError("DeleteDocument", admissionID, err)
	}

	s.logger.Info("DeleteDocument: document id=%d removed from admission id=%d", documentID, admissionID)
	return nil
}

// Review сохраняет решение директора по поданному делу
func (s *Service) Review(ctx context.Context, id int64, req *models.ReviewRequest) (*models.AdmissionResponse, error) {
	s.logger.Info("Review: admission id=%d decision=%s by admin=%d", id, req.Decision, req.ActorID)

	if !req.ActorRole.CanReview() {
		s.logger.Warn("Review: role=%s cannot review admissions", req.ActorRole)
		return nil, ErrAccessDenied
	}

	decision := domain.AdmissionStatus(req.Decision)
	if !decision.IsReviewDecision() {
		s.logger.Warn("Review: invalid decision=%s", req.Decision)
		return nil, ErrInvalidStatus
	}

	var remarks *string
	if req.Remarks != nil {
		trimmed := strings.TrimSpace(*req.Remarks)
		if len(trimmed) > domain.MaxRemarksLength {
			return nil, fmt.Errorf("%w: remarks are longer than %d characters", ErrInvalidInput, domain.MaxRemarksLength)
		}
		if trimmed != "" {
			remarks = &trimmed
		}
	}

	var reviewed *domain.Admission
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		admission, err := s.admissionRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !admission.CanBeReviewed() {
			return ErrCannotReview
		}

		reviewed, err = s.admissionRepo.Review(txCtx, id, decision, remarks, req.ActorID, s.timeProvider.Now())
		if errors.Is(err, admissionRepo.ErrAdmissionNotFound) {
			// статус сменился между чтением и записью
			return ErrCannotReview
		}
		if err != nil {
			return err
		}

		return s.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      domain.AdminActor(req.ActorID),
			Action:     domain.ActionAdmissionReviewed,
			EntityType: domain.EntityAdmission,
			EntityID:   id,
			Details:    domain.Fields{"decision": req.Decision},
		})
	})
	if err != nil {
		return nil, s.mapError("Review", id, err)
	}

	docs, err := s.admissionRepo.ListDocuments(ctx, id)
	if err != nil {
		s.logger.Error("Review: failed to list documents for admission id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Review - list documents: %v", ErrInternal, err)
	}
	reviewed.Documents = docs

	s.logger.Info("Review: admission id=%d is now %s", id, reviewed.Status)
	return models.FromDomainAdmission(reviewed), nil
}

// Вспомогательные методы

// load получает дело вместе с документами
func (s *Service) load(ctx context.Context, id int64) (*domain.Admission, error) {
	admission, err := s.admissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	docs, err := s.admissionRepo.ListDocuments(ctx, id)
	if err != nil {
		return nil, err
	}
	admission.Documents = docs

	return admission, nil
}

// checkReadyToSubmit проверяет анкету и обязательные документы перед подачей
func (s *Service) checkReadyToSubmit(ctx context.Context, admission *domain.Admission) error {
	formTemplate, err := s.templates.Resolve(ctx, domain.TemplateAdmission)
	if err != nil {
		return err
	}
	if fieldErrs := formTemplate.Validate(admission.Fields); len(fieldErrs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, domain.FieldErrors(fieldErrs))
	}

	docsTemplate, err := s.templates.Resolve(ctx, domain.TemplateDocuments)
	if err != nil {
		return err
	}
	if missing := admission.MissingDocuments(docsTemplate.RequiredNames()); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingDocuments, strings.Join(missing, ", "))
	}

	return nil
}

// mapError переводит ошибки репозитория в ошибки сервиса
func (s *Service) mapError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, admissionRepo.ErrAdmissionNotFound):
		s.logger.Warn("%s: admission id=%d not found", op, id)
		return ErrAdmissionNotFound
	case errors.Is(err, admissionRepo.ErrDocumentNotFound):
		s.logger.Warn("%s: document of admission id=%d not found", op, id)
		return ErrDocumentNotFound
	case errors.Is(err, ErrNotEditable),
		errors.Is(err, ErrCannotReview),
		errors.Is(err, ErrMissingDocuments),
		errors.Is(err, ErrInvalidInput):
		s.logger.Warn("%s: admission id=%d rejected: %v", op, id, err)
		return err
	}
	s.logger.Error("%s: repository error for admission id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
