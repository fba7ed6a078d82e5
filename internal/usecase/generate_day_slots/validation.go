package generate_day_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DayStartTime != nil {
		if err := req.DayStartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid dayStartTime: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// validateSettings проверяет итоговые параметры генерации
func validateSettings(s domain.SlotSettings) error {
	if s.SlotDurationMinutes < domain.MinSlotDurationMinutes || s.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if s.GapMinutes < 0 || s.GapMinutes > domain.MaxSlotGapMinutes {
		return fmt.Errorf("%w: gap must be between 0 and %d minutes", ErrInvalidInput, domain.MaxSlotGapMinutes)
	}

	if s.MaxSlotsPerDay < 1 || s.MaxSlotsPerDay > domain.MaxSlotsPerDay {
		return fmt.Errorf("%w: slots per day must be between 1 and %d", ErrInvalidInput, domain.MaxSlotsPerDay)
	}

	if s.ParentsPerSlot < domain.MinSlotCapacity || s.ParentsPerSlot > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}

	return nil
}
