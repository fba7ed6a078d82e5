package generate_day_slots

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/pkg/types"
)

// generateTimeSlots генерирует до maxSlots слотов от dayStart с шагом duration+gap
// Генерация останавливается, если следующий слот не помещается в сутки
// Для сегодняшней даты уже начавшиеся слоты отбрасываются
func generateTimeSlots(
	dayStart types.TimeString,
	duration int,
	gap int,
	maxSlots int,
	date time.Time,
	now time.Time,
) ([]timeRange, error) {
	result := make([]timeRange, 0, maxSlots)
	current := dayStart

	for i := 0; i < maxSlots; i++ {
		end, err := current.AddMinutes(duration)
		if errors.Is(err, types.ErrTimeOverflow) {
			break
		}
		if err != nil {
			return nil, err
		}

		result = append(result, timeRange{start: current, end: end})

		current, err = end.AddMinutes(gap)
		if errors.Is(err, types.ErrTimeOverflow) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if !isSameDay(date, now) {
		return result, nil
	}

	currentTime := types.NewTimeString(now)
	upcoming := make([]timeRange, 0, len(result))
	for _, r := range result {
		if r.start.IsAfter(currentTime) {
			upcoming = append(upcoming, r)
		}
	}
	return upcoming, nil
}

// mergeSettings применяет параметры запроса поверх сохраненных настроек
func mergeSettings(settings domain.SlotSettings, req *Request) domain.SlotSettings {
	if req.DayStartTime != nil {
		settings.DayStartTime = *req.DayStartTime
	}
	if req.SlotDurationMinutes != nil {
		settings.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.GapMinutes != nil {
		settings.GapMinutes = *req.GapMinutes
	}
	if req.MaxSlots != nil {
		settings.MaxSlotsPerDay = *req.MaxSlots
	}
	if req.Capacity != nil {
		settings.ParentsPerSlot = *req.Capacity
	}
	return settings
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
