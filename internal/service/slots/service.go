package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/slots/models"
)

// Service сервис слотов собеседований и настроек расписания
type Service struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	activityRepo ActivityRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	activityRepo ActivityRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		activityRepo: activityRepo,
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

// Create создает слот
// Время окончания и вместимость по умолчанию берутся из настроек расписания
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot date=%s, start=%s by admin=%d",
		req.Date.Format(domain.DateFormat), req.StartTime, req.ActorID)

	settings, err := s.loadSettings(ctx)
	if err != nil {
		s.logger.Error("Create: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: Create - load settings: %v", ErrInternal, err)
	}

	slot := &domain.CounsellingSlot{
		Date:      req.Date,
		StartTime: req.StartTime,
		Capacity:  settings.ParentsPerSlot,
		CreatedBy: &req.ActorID,
	}
	if req.Capacity != nil {
		slot.Capacity = *req.Capacity
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	} else {
		end, err := req.StartTime.AddMinutes(settings.SlotDurationMinutes)
		if err != nil {
			s.logger.Warn("Create: cannot compute end time: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		slot.EndTime = end
	}

	if err := s.validateSlot(slot); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var created *domain.CounsellingSlot
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.slotRepo.Create(txCtx, slot)
		if err != nil {
			return err
		}
		return s.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      domain.AdminActor(req.ActorID),
			Action:     domain.ActionSlotCreated,
			EntityType: domain.EntitySlot,
			EntityID:   created.ID,
			Details: domain.Fields{
				"date":      created.Date.Format(domain.DateFormat),
				"startTime": created.StartTime.String(),
				"capacity":  created.Capacity,
			},
		})
	})
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotExists) {
			s.logger.Warn("Create: slot date=%s, start=%s already exists",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrSlotExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created slot id=%d", created.ID)
	return models.FromDomainSlot(created), nil
}

// List получает слоты с вычисленным статусом
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	filter := domain.SlotFilter{From: req.From, To: req.To}
	if req.Status != nil {
		status, ok := models.ToDomainSlotStatus(*req.Status)
		if !ok {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d slots", len(slots))
	return models.FromDomainSlotList(slots), nil
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// Update изменяет слот
// Вместимость можно уменьшить ниже числа записей: записи сохраняются, слот читается как full
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Update: updating slot id=%d by admin=%d", id, req.ActorID)

	var updated *domain.CounsellingSlot
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		// Дату проверяем только при переносе: прошедший слот можно отключить
		moved := req.Date != nil || req.StartTime != nil || req.EndTime != nil
		req.ApplyToSlot(slot)

		if err := s.validateSlotFields(slot); err != nil {
			return err
		}
		if moved {
			if err := s.checkNotInPast(slot); err != nil {
				return err
			}
		}
		if slot.BookedCount > slot.Capacity {
			s.logger.Warn("Update: slot id=%d capacity=%d is below booked count=%d, slot stays full",
				id, slot.Capacity, slot.BookedCount)
		}

		updated, err = s.slotRepo.Update(txCtx, slot)
		if err != nil {
			return err
		}

		return s.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      domain.AdminActor(req.ActorID),
			Action:     domain.ActionSlotUpdated,
			EntityType: domain.EntitySlot,
			EntityID:   id,
			Details: domain.Fields{
				"capacity": updated.Capacity,
				"disabled": updated.Disabled,
				"status":   string(updated.Status()),
			},
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("Update: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotExists):
			s.logger.Warn("Update: slot id=%d collides with existing start time", id)
			return nil, ErrSlotExists
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrSlotInPast):
			s.logger.Warn("Update: validation failed for slot id=%d: %v", id, err)
			return nil, err
		}
		s.logger.Error("Update: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated slot id=%d, status=%s", id, updated.Status())
	return models.FromDomainSlot(updated), nil
}

// ListBookings получает слот и записи на него
func (s *Service) ListBookings(ctx context.Context, slotID int64) (*models.BookingListResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("ListBookings: slot id=%d not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("ListBookings: repository error for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.ListBySlot(ctx, slotID)
	if err != nil {
		s.logger.Error("ListBookings: repository error for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	resp := &models.BookingListResponse{
		Slot:     *models.FromDomainSlot(slot),
		Bookings: make([]models.BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *models.FromDomainBooking(b))
	}

	return resp, nil
}

// GetSettings получает настройки расписания (значения по умолчанию, если не сохранялись)
func (s *Service) GetSettings(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		s.logger.Error("GetSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// UpdateSettings изменяет настройки расписания
// Существующие слоты не пересчитываются
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating slot settings by admin=%d", req.ActorID)

	var saved *domain.SlotSettings
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		settings, err := s.loadSettings(txCtx)
		if err != nil {
			return err
		}

		req.ApplyToSettings(settings)
		if err := settings.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		saved, err = s.settingsRepo.Upsert(txCtx, settings)
		if err != nil {
			return err
		}

		return s.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      domain.AdminActor(req.ActorID),
			Action:     domain.ActionSettingsUpdated,
			EntityType: domain.EntitySettings,
			EntityID:   1,
			Details: domain.Fields{
				"slotDurationMinutes": saved.SlotDurationMinutes,
				"gapMinutes":          saved.GapMinutes,
				"parentsPerSlot":      saved.ParentsPerSlot,
				"maxSlotsPerDay":      saved.MaxSlotsPerDay,
			},
		})
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("UpdateSettings: validation failed: %v", err)
			return nil, err
		}
		s.logger.Error("UpdateSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: successfully updated slot settings")
	return models.FromDomainSettings(saved), nil
}

// Вспомогательные методы

// loadSettings возвращает сохраненные настройки или значения по умолчанию
func (s *Service) loadSettings(ctx context.Context) (*domain.SlotSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		defaults := domain.DefaultSlotSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// validateSlot проверяет новый слот
func (s *Service) validateSlot(slot *domain.CounsellingSlot) error {
	if err := s.validateSlotFields(slot); err != nil {
		return err
	}
	return s.checkNotInPast(slot)
}

// validateSlotFields проверяет время и вместимость слота
func (s *Service) validateSlotFields(slot *domain.CounsellingSlot) error {
	if slot.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := slot.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if err := slot.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !slot.StartTime.IsBefore(slot.EndTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}
	if slot.Capacity < domain.MinSlotCapacity || slot.Capacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}
	return nil
}

// checkNotInPast проверяет, что дата слота не раньше сегодняшней
func (s *Service) checkNotInPast(slot *domain.CounsellingSlot) error {
	today := s.timeProvider.Now().Format(domain.DateFormat)
	if slot.Date.Format(domain.DateFormat) < today {
		return ErrSlotInPast
	}
	return nil
}
