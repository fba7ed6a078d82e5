package activity

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/activity/models"
)

var knownEntities = map[string]struct{}{
	domain.EntityEnquiry:   {},
	domain.EntityAdmission: {},
	domain.EntitySlot:      {},
	domain.EntityBooking:   {},
	domain.EntitySettings:  {},
	domain.EntityTemplate:  {},
}

// Service сервис журнала действий (только чтение)
type Service struct {
	activityRepo ActivityRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса журнала
func NewService(activityRepo ActivityRepository, logger Logger) *Service {
	return &Service{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// List возвращает записи журнала, новые первыми
func (s *Service) List(ctx context.Context, req *models.ListActivityRequest) (*models.ActivityListResponse, error) {
	if req.EntityType != nil {
		if _, ok := knownEntities[*req.EntityType]; !ok {
			s.logger.Warn("List: unknown entity type %q", *req.EntityType)
			return nil, fmt.Errorf("%w: unknown entity type %q", ErrInvalidInput, *req.EntityType)
		}
	}
	if req.EntityID != nil && req.EntityType == nil {
		return nil, fmt.Errorf("%w: entityId requires entityType", ErrInvalidInput)
	}
	if req.Limit > domain.MaxActivityLogPageLimit {
		return nil, fmt.Errorf("%w: limit must not exceed %d", ErrInvalidInput, domain.MaxActivityLogPageLimit)
	}

	entries, err := s.activityRepo.List(ctx, domain.ActivityFilter{
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Limit:      req.Limit,
	})
	if err != nil {
		s.logger.Error("List: failed to list activity: %v", err)
		return nil, fmt.Errorf("%w: List - list activity: %v", ErrInternal, err)
	}

	return models.FromDomainActivityList(entries), nil
}
