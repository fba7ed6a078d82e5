package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/slots/models"
	"github.com/m04kA/SMC-AdmissionsService/pkg/ptr"
	"github.com/m04kA/SMC-AdmissionsService/pkg/types"
)

type fixture struct {
	slots    *mockSlotRepo
	bookings *mockBookingRepo
	settings *mockSettingsRepo
	activity *mockActivityRepo
	svc      *Service
}

var today = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		slots:    &mockSlotRepo{},
		bookings: &mockBookingRepo{},
		settings: &mockSettingsRepo{},
		activity: &mockActivityRepo{},
	}
	f.svc = NewService(f.slots, f.bookings, f.settings, f.activity, passTx{}, nopLogger{}).
		WithTimeProvider(fixedTime{t: today})
	return f
}

func TestCreate_UsesSettingsDefaults(t *testing.T) {
	f := newFixture()
	f.settings.On("Get", mock.Anything).Return(nil, settingsRepo.ErrSettingsNotFound)
	f.slots.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.CounsellingSlot) bool {
		return s.Capacity == domain.DefaultSlotCapacity && s.EndTime == "10:30" && s.BookedCount == 0
	})).Return(func(_ context.Context, s *domain.CounsellingSlot) *domain.CounsellingSlot {
		s.ID = 7
		return s
	}, nil)
	f.activity.On("Append", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.Create(context.Background(), &models.CreateSlotRequest{
		ActorID:   1,
		Date:      today.AddDate(0, 0, 1),
		StartTime: "10:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "available", resp.Status)
	assert.Equal(t, 3, resp.SeatsLeft)
	f.slots.AssertExpectations(t)
}

func TestCreate_RejectsPastDate(t *testing.T) {
	f := newFixture()
	f.settings.On("Get", mock.Anything).Return(nil, settingsRepo.ErrSettingsNotFound)

	_, err := f.svc.Create(context.Background(), &models.CreateSlotRequest{
		ActorID:   1,
		Date:      today.AddDate(0, 0, -1),
		StartTime: "10:00",
	})

	assert.ErrorIs(t, err, ErrSlotInPast)
	f.slots.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_RejectsEndBeforeStart(t *testing.T) {
	f := newFixture()
	f.settings.On("Get", mock.Anything).Return(nil, settingsRepo.ErrSettingsNotFound)

	end := types.TimeString("09:00")
	_, err := f.svc.Create(context.Background(), &models.CreateSlotRequest{
		ActorID:   1,
		Date:      today,
		StartTime: "10:00",
		EndTime:   &end,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_DuplicateStart(t *testing.T) {
	f := newFixture()
	f.settings.On("Get", mock.Anything).Return(nil, settingsRepo.ErrSettingsNotFound)
	f.slots.On("Create", mock.Anything, mock.Anything).Return(nil, slotRepo.ErrSlotExists)

	_, err := f.svc.Create(context.Background(), &models.CreateSlotRequest{
		ActorID:   1,
		Date:      today,
		StartTime: "10:00",
	})

	assert.ErrorIs(t, err, ErrSlotExists)
}

func TestUpdate_CapacityBelowBookedReadsFull(t *testing.T) {
	f := newFixture()
	existing := &domain.CounsellingSlot{
		ID: 5, Date: today, StartTime: "10:00", EndTime: "10:30", Capacity: 3, BookedCount: 2,
	}
	f.slots.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	f.slots.On("Update", mock.Anything, mock.Anything).
		Return(func(_ context.Context, s *domain.CounsellingSlot) *domain.CounsellingSlot { return s }, nil)
	f.activity.On("Append", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.Update(context.Background(), 5, &models.UpdateSlotRequest{ActorID: 1, Capacity: ptr.Ptr(1)})

	require.NoError(t, err)
	assert.Equal(t, "full", resp.Status)
	assert.Equal(t, 0, resp.SeatsLeft)
	assert.Equal(t, 2, resp.BookedCount)
}

func TestUpdate_KeepsDisabledFlagWhenNotPassed(t *testing.T) {
	f := newFixture()
	existing := &domain.CounsellingSlot{
		ID: 5, Date: today, StartTime: "10:00", EndTime: "10:30", Capacity: 3, Disabled: true,
	}
	f.slots.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	f.slots.On("Update", mock.Anything, mock.Anything).
		Return(func(_ context.Context, s *domain.CounsellingSlot) *domain.CounsellingSlot { return s }, nil)
	f.activity.On("Append", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.Update(context.Background(), 5, &models.UpdateSlotRequest{ActorID: 1, Capacity: ptr.Ptr(4)})

	require.NoError(t, err)
	assert.True(t, resp.Disabled)
	assert.Equal(t, "disabled", resp.Status)
}

func TestUpdate_PastSlotCanBeDisabled(t *testing.T) {
	f := newFixture()
	existing := &domain.CounsellingSlot{
		ID: 5, Date: today.AddDate(0, 0, -3), StartTime: "10:00", EndTime: "10:30", Capacity: 3,
	}
	f.slots.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	f.slots.On("Update", mock.Anything, mock.Anything).
		Return(func(_ context.Context, s *domain.CounsellingSlot) *domain.CounsellingSlot { return s }, nil)
	f.activity.On("Append", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.Update(context.Background(), 5, &models.UpdateSlotRequest{ActorID: 1, Disabled: ptr.Ptr(true)})

	require.NoError(t, err)
	assert.Equal(t, "disabled", resp.Status)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture()
	f.slots.On("GetByID", mock.Anything, int64(9)).Return(nil, slotRepo.ErrSlotNotFound)

	_, err := f.svc.Update(context.Background(), 9, &models.UpdateSlotRequest{ActorID: 1})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestList_InvalidStatus(t *testing.T) {
	f := newFixture()

	_, err := f.svc.List(context.Background(), &models.ListSlotsRequest{Status: ptr.Ptr("open")})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateSettings_Validates(t *testing.T) {
	f := newFixture()
	f.settings.On("Get", mock.Anything).Return(nil, settingsRepo.ErrSettingsNotFound)

	_, err := f.svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		ActorID:        1,
		MaxSlotsPerDay: ptr.Ptr(40),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	f.settings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdateSettings_Saves(t *testing.T) {
	f := newFixture()
	f.settings.On("Get", mock.Anything).Return(nil, settingsRepo.ErrSettingsNotFound)
	f.settings.On("Upsert", mock.Anything, mock.Anything).
		Return(func(_ context.Context, s *domain.SlotSettings) *domain.SlotSettings { return s }, nil)
	f.activity.On("Append", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		ActorID:        1,
		ParentsPerSlot: ptr.Ptr(5),
		ReminderDays:   []int{1, 3},
	})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.ParentsPerSlot)
	assert.Equal(t, []int{1, 3}, resp.ReminderDays)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
}
