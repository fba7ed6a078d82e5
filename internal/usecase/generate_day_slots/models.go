package generate_day_slots

import (
	"time"

	slotModels "github.com/m04kA/SMC-AdmissionsService/internal/service/slots/models"
	"github.com/m04kA/SMC-AdmissionsService/pkg/types"
)

// Request модель запроса на генерацию слотов дня
// Незаданные параметры берутся из настроек расписания
type Request struct {
	ActorID             int64
	Date                time.Time
	DayStartTime        *types.TimeString
	SlotDurationMinutes *int
	GapMinutes          *int
	MaxSlots            *int
	Capacity            *int
}

// Response модель ответа с созданными слотами
type Response struct {
	Date    string                    `json:"date"`
	Created []slotModels.SlotResponse `json:"created"`
	Skipped []string                  `json:"skipped"` // время начала уже существующих слотов
}

// timeRange начало и конец слота
type timeRange struct {
	start types.TimeString
	end   types.TimeString
}
