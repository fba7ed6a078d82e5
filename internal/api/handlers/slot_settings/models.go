package slot_settings

import (
	"github.com/m04kA/SMC-AdmissionsService/internal/service/slots/models"
	"github.com/m04kA/SMC-AdmissionsService/pkg/types"
)

// UpdateSettingsRequest HTTP request model; передаются только изменяемые поля
type UpdateSettingsRequest struct {
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	GapMinutes          *int    `json:"gapMinutes,omitempty"`
	ParentsPerSlot      *int    `json:"parentsPerSlot,omitempty"`
	MaxSlotsPerDay      *int    `json:"maxSlotsPerDay,omitempty"`
	DayStartTime        *string `json:"dayStartTime,omitempty"`
	ReminderDays        []int   `json:"reminderDays,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// Границы значений проверяет сервис
func (r *UpdateSettingsRequest) ToServiceRequest(actorID int64) (*models.UpdateSettingsRequest, error) {
	req := &models.UpdateSettingsRequest{
		ActorID:             actorID,
		SlotDurationMinutes: r.SlotDurationMinutes,
		GapMinutes:          r.GapMinutes,
		ParentsPerSlot:      r.ParentsPerSlot,
		MaxSlotsPerDay:      r.MaxSlotsPerDay,
		ReminderDays:        r.ReminderDays,
	}

	if r.DayStartTime != nil {
		start, err := types.NewTimeStringFromString(*r.DayStartTime)
		if err != nil {
			return nil, err
		}
		req.DayStartTime = &start
	}

	return req, nil
}
