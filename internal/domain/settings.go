package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/pkg/types"
)

// SlotSettings единственная запись с настройками расписания собеседований
type SlotSettings struct {
	SlotDurationMinutes int
	GapMinutes          int
	ParentsPerSlot      int
	MaxSlotsPerDay      int
	DayStartTime        types.TimeString
	ReminderDays        []int

	UpdatedAt time.Time
}

// DefaultSlotSettings настройки, действующие пока запись не сохранена
func DefaultSlotSettings() SlotSettings {
	return SlotSettings{
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		GapMinutes:          DefaultSlotGapMinutes,
		ParentsPerSlot:      DefaultSlotCapacity,
		MaxSlotsPerDay:      DefaultMaxSlotsPerDay,
		DayStartTime:        types.TimeString(DefaultDayStartTime),
		ReminderDays:        append([]int(nil), DefaultReminderDays...),
	}
}

// StepMinutes шаг между началами соседних слотов
func (s SlotSettings) StepMinutes() int {
	return s.SlotDurationMinutes + s.GapMinutes
}

// Validate проверяет настройки, включая то, что все слоты дня помещаются до полуночи
func (s SlotSettings) Validate() error {
	if s.SlotDurationMinutes < MinSlotDurationMinutes || s.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("slotDurationMinutes must be between %d and %d", MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if s.GapMinutes < 0 || s.GapMinutes > MaxSlotGapMinutes {
		return fmt.Errorf("gapMinutes must be between 0 and %d", MaxSlotGapMinutes)
	}
	if s.ParentsPerSlot < MinSlotCapacity || s.ParentsPerSlot > MaxSlotCapacity {
		return fmt.Errorf("parentsPerSlot must be between %d and %d", MinSlotCapacity, MaxSlotCapacity)
	}
	if s.MaxSlotsPerDay < 1 || s.MaxSlotsPerDay > MaxSlotsPerDay {
		return fmt.Errorf("maxSlotsPerDay must be between 1 and %d", MaxSlotsPerDay)
	}
	if err := s.DayStartTime.Validate(); err != nil {
		return fmt.Errorf("dayStartTime: %v", err)
	}

	seen := make(map[int]struct{}, len(s.ReminderDays))
	for _, d := range s.ReminderDays {
		if d < 1 || d > MaxReminderDay {
			return fmt.Errorf("reminderDays must be between 1 and %d", MaxReminderDay)
		}
		if _, ok := seen[d]; ok {
			return fmt.Errorf("reminderDays contains duplicate value %d", d)
		}
		seen[d] = struct{}{}
	}

	lastEnd := (s.MaxSlotsPerDay-1)*s.StepMinutes() + s.SlotDurationMinutes
	if _, err := s.DayStartTime.AddMinutes(lastEnd); err != nil {
		return fmt.Errorf("%d slots starting at %s do not fit into one day", s.MaxSlotsPerDay, s.DayStartTime)
	}

	return nil
}
