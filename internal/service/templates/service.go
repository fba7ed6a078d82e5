package templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	templateRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/template"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/templates/models"
)

// Service сервис шаблонов анкет (обращение, дело, список документов)
type Service struct {
	templateRepo TemplateRepository
	activityRepo ActivityRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(
	templateRepo TemplateRepository,
	activityRepo ActivityRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		templateRepo: templateRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Resolve возвращает действующий шаблон: сохраненный или встроенный
func (s *Service) Resolve(ctx context.Context, kind domain.TemplateKind) (*domain.FormTemplate, error) {
	t, _, err := s.resolve(ctx, kind)
	return t, err
}

// Get получает шаблон по виду
// Публичный метод - форма обращения строится по нему на сайте
func (s *Service) Get(ctx context.Context, kind string) (*models.TemplateResponse, error) {
	k := domain.TemplateKind(kind)
	if !k.IsValid() {
		s.logger.Warn("Get: unknown template kind=%s", kind)
		return nil, ErrUnknownKind
	}

	t, isDefault, err := s.resolve(ctx, k)
	if err != nil {
		s.logger.Error("Get: repository error for kind=%s: %v", kind, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTemplate(t, isDefault), nil
}

// Update заменяет поля шаблона
// Уже сохраненные анкеты не перепроверяются
func (s *Service) Update(ctx context.Context, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Update: updating template kind=%s by admin=%d", req.Kind, req.ActorID)

	k := domain.TemplateKind(req.Kind)
	if !k.IsValid() {
		s.logger.Warn("Update: unknown template kind=%s", req.Kind)
		return nil, ErrUnknownKind
	}

	t := &domain.FormTemplate{
		Kind:      k,
		Fields:    req.Fields,
		UpdatedBy: &req.ActorID,
	}
	if err := t.ValidateDefinition(); err != nil {
		s.logger.Warn("Update: invalid definition for kind=%s: %v", req.Kind, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var saved *domain.FormTemplate
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.templateRepo.Upsert(txCtx, t)
		if err != nil {
			return err
		}
		return s.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      domain.AdminActor(req.ActorID),
			Action:     domain.ActionTemplateUpdated,
			EntityType: domain.EntityTemplate,
			Details:    domain.Fields{"kind": req.Kind, "fields": len(t.Fields)},
		})
	})
	if err != nil {
		s.logger.Error("Update: repository error for kind=%s: %v", req.Kind, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated template kind=%s (%d fields)", req.Kind, len(saved.Fields))
	return models.FromDomainTemplate(saved, false), nil
}

func (s *Service) resolve(ctx context.Context, kind domain.TemplateKind) (*domain.FormTemplate, bool, error) {
	t, err := s.templateRepo.Get(ctx, kind)
	if errors.Is(err, templateRepo.ErrTemplateNotFound) {
		def := domain.DefaultTemplate(kind)
		return &def, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return t, false, nil
}
