package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSlotStatus(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		booked   int
		disabled bool
		want     SlotStatus
	}{
		{"empty slot", 3, 0, false, SlotStatusAvailable},
		{"partially booked", 3, 2, false, SlotStatusAvailable},
		{"exactly full", 3, 3, false, SlotStatusFull},
		{"capacity lowered below booked", 2, 3, false, SlotStatusFull},
		{"disabled with free seats stays disabled", 3, 1, true, SlotStatusDisabled},
		{"disabled and full reads full", 3, 3, true, SlotStatusFull},
		{"zero capacity", 0, 0, false, SlotStatusFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveSlotStatus(tt.capacity, tt.booked, tt.disabled))
		})
	}
}

func TestDeriveSlotStatus_NeverAvailableWhenFull(t *testing.T) {
	for capacity := 0; capacity <= 10; capacity++ {
		for booked := capacity; booked <= capacity+3; booked++ {
			for _, disabled := range []bool{false, true} {
				assert.NotEqual(t, SlotStatusAvailable, DeriveSlotStatus(capacity, booked, disabled),
					"capacity=%d booked=%d disabled=%v", capacity, booked, disabled)
			}
		}
	}
}

func TestCounsellingSlot_Seats(t *testing.T) {
	slot := CounsellingSlot{Capacity: 3, BookedCount: 2}
	assert.Equal(t, 1, slot.SeatsLeft())
	assert.True(t, slot.IsBookable())
	assert.InDelta(t, 66.66, slot.OccupancyRate(), 0.01)

	slot.BookedCount = 3
	assert.Equal(t, 0, slot.SeatsLeft())
	assert.False(t, slot.IsBookable())
	assert.Equal(t, SlotStatusFull, slot.Status())

	slot.Capacity = 1
	assert.Equal(t, 0, slot.SeatsLeft())
	assert.Equal(t, 100.0, slot.OccupancyRate())
}

func TestCounsellingSlot_DisabledIsSticky(t *testing.T) {
	slot := CounsellingSlot{Capacity: 3, BookedCount: 3, Disabled: true}
	assert.Equal(t, SlotStatusFull, slot.Status())

	// место освободилось, ручное отключение снова видно
	slot.BookedCount = 2
	assert.Equal(t, SlotStatusDisabled, slot.Status())

	// увеличение вместимости не включает слот
	slot.Capacity = 10
	assert.Equal(t, SlotStatusDisabled, slot.Status())
	assert.False(t, slot.IsBookable())
}
