package domain

import (
	"time"

	"github.com/m04kA/SMC-AdmissionsService/pkg/types"
)

// SlotStatus состояние слота, вычисляемое при чтении
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusFull      SlotStatus = "full"
	SlotStatusDisabled  SlotStatus = "disabled"
)

// CounsellingSlot временное окно для собеседования с ограниченным числом мест
// Уникальность (Date, StartTime) обеспечивает индекс БД
type CounsellingSlot struct {
	ID          int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Capacity    int
	BookedCount int
	Disabled    bool // ручное отключение сотрудником, снимается только явно
	CreatedBy   *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeriveSlotStatus вычисляет статус слота
// Заполненный слот всегда full; иначе disabled, если отключен вручную; иначе available
func DeriveSlotStatus(capacity, bookedCount int, disabled bool) SlotStatus {
	if bookedCount >= capacity {
		return SlotStatusFull
	}
	if disabled {
		return SlotStatusDisabled
	}
	return SlotStatusAvailable
}

// Status текущий статус слота
func (s *CounsellingSlot) Status() SlotStatus {
	return DeriveSlotStatus(s.Capacity, s.BookedCount, s.Disabled)
}

// SeatsLeft количество свободных мест (не меньше нуля)
func (s *CounsellingSlot) SeatsLeft() int {
	left := s.Capacity - s.BookedCount
	if left < 0 {
		return 0
	}
	return left
}

// IsBookable возвращает true, если на слот можно записаться
func (s *CounsellingSlot) IsBookable() bool {
	return s.Status() == SlotStatusAvailable
}

// OccupancyRate заполненность в процентах (0-100)
func (s *CounsellingSlot) OccupancyRate() float64 {
	if s.Capacity <= 0 {
		return 100
	}
	rate := float64(s.BookedCount) / float64(s.Capacity) * 100
	if rate > 100 {
		return 100
	}
	return rate
}

// StartsAt момент начала слота в локации даты
func (s *CounsellingSlot) StartsAt() (time.Time, error) {
	return s.StartTime.On(s.Date)
}

// IsValid проверяет, что статус известен
func (st SlotStatus) IsValid() bool {
	return st == SlotStatusAvailable || st == SlotStatusFull || st == SlotStatusDisabled
}

// SlotFilter фильтр списка слотов
type SlotFilter struct {
	From   *time.Time
	To     *time.Time
	Status *SlotStatus // фильтр по вычисляемому статусу
}
