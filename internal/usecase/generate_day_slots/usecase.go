package generate_day_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/settings"
	slotModels "github.com/m04kA/SMC-AdmissionsService/internal/service/slots/models"
)

// UseCase use case для генерации слотов на день по настройкам расписания
type UseCase struct {
	slotRepo     SlotRepository
	settingsRepo SettingsRepository
	activityRepo ActivityRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	settingsRepo SettingsRepository,
	activityRepo ActivityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		settingsRepo: settingsRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute создает слоты дня; слоты с уже занятым временем начала пропускаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateDaySlots: actor=%d, date=%s", req.ActorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateDaySlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GenerateDaySlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// 2. Настройки расписания (значения по умолчанию, если не сохранены)
	stored, err := uc.settingsRepo.Get(ctx)
	settings := domain.DefaultSlotSettings()
	switch {
	case err == nil:
		settings = *stored
	case errors.Is(err, settingsRepo.ErrSettingsNotFound):
		uc.logger.Info("GenerateDaySlots: using default settings")
	default:
		uc.logger.Error("GenerateDaySlots: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	settings = mergeSettings(settings, req)
	if err := validateSettings(settings); err != nil {
		uc.logger.Warn("GenerateDaySlots: invalid parameters: %v", err)
		return nil, err
	}

	// 3. Сетка времени
	ranges, err := generateTimeSlots(
		settings.DayStartTime,
		settings.SlotDurationMinutes,
		settings.GapMinutes,
		settings.MaxSlotsPerDay,
		req.Date,
		now,
	)
	if err != nil {
		uc.logger.Warn("GenerateDaySlots: failed to build time grid: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	resp := &Response{
		Date:    req.Date.Format(domain.DateFormat),
		Created: make([]slotModels.SlotResponse, 0, len(ranges)),
		Skipped: make([]string, 0),
	}

	// 4. Создание слотов в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, r := range ranges {
			slot := &domain.CounsellingSlot{
				Date:      req.Date,
				StartTime: r.start,
				EndTime:   r.end,
				Capacity:  settings.ParentsPerSlot,
				CreatedBy: &req.ActorID,
			}

			created, err := uc.slotRepo.CreateIfAbsent(txCtx, slot)
			if err != nil {
				uc.logger.Error("GenerateDaySlots: failed to create slot %s: %v", r.start, err)
				return fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
			}
			if !created {
				resp.Skipped = append(resp.Skipped, r.start.String())
				continue
			}
			resp.Created = append(resp.Created, *slotModels.FromDomainSlot(slot))
		}

		if len(resp.Created) == 0 {
			return nil
		}

		if err := uc.activityRepo.Append(txCtx, &domain.ActivityLog{
			Actor:      domain.AdminActor(req.ActorID),
			Action:     domain.ActionSlotsGenerated,
			EntityType: domain.EntitySlot,
			EntityID:   resp.Created[0].ID,
			Details: domain.Fields{
				"date":    resp.Date,
				"created": len(resp.Created),
				"skipped": len(resp.Skipped),
			},
		}); err != nil {
			uc.logger.Error("GenerateDaySlots: failed to append activity: %v", err)
			return fmt.Errorf("%w: failed to append activity: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GenerateDaySlots: date=%s, created=%d, skipped=%d",
		resp.Date, len(resp.Created), len(resp.Skipped))
	return resp, nil
}
