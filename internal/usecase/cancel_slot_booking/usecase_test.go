package cancel_slot_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AdmissionsService/pkg/types"
)

type mockSlotRepo struct{ mock.Mock }

func (m *mockSlotRepo) GetByID(ctx context.Context, id int64) (*domain.CounsellingSlot, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*domain.CounsellingSlot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSlotRepo) DecrementBooked(ctx context.Context, id int64) (*domain.CounsellingSlot, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*domain.CounsellingSlot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.SlotBooking, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*domain.SlotBooking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockActivityRepo struct{ mock.Mock }

func (m *mockActivityRepo) Append(ctx context.Context, entry *domain.ActivityLog) error {
	return m.Called(ctx, entry).Error(0)
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func slot(booked int, disabled bool) *domain.CounsellingSlot {
	return &domain.CounsellingSlot{
		ID:          7,
		Date:        time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("10:00"),
		EndTime:     types.TimeString("10:30"),
		Capacity:    3,
		BookedCount: booked,
		Disabled:    disabled,
	}
}

func TestExecute_FullSlotBecomesAvailable(t *testing.T) {
	slots := &mockSlotRepo{}
	bookings := &mockBookingRepo{}
	activity := &mockActivityRepo{}
	bookings.On("GetByID", mock.Anything, int64(100)).Return(&domain.SlotBooking{ID: 100, SlotID: 7, TokenID: "ENQ-20260301-ABC123"}, nil)
	bookings.On("Delete", mock.Anything, int64(100)).Return(nil)
	slots.On("DecrementBooked", mock.Anything, int64(7)).Return(slot(2, false), nil)
	activity.On("Append", mock.Anything, mock.MatchedBy(func(e *domain.ActivityLog) bool {
		return e.Action == domain.ActionSlotBookingCanceled && e.EntityID == 100
	})).Return(nil)

	uc := NewUseCase(slots, bookings, activity, passTx{}, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{SlotID: 7, BookingID: 100, Actor: domain.AdminActor(1)})

	require.NoError(t, err)
	assert.Equal(t, "available", resp.Slot.Status)
	assert.Equal(t, 1, resp.Slot.SeatsLeft)
	activity.AssertExpectations(t)
}

func TestExecute_DisabledSlotStaysDisabled(t *testing.T) {
	slots := &mockSlotRepo{}
	bookings := &mockBookingRepo{}
	activity := &mockActivityRepo{}
	bookings.On("GetByID", mock.Anything, int64(100)).Return(&domain.SlotBooking{ID: 100, SlotID: 7}, nil)
	bookings.On("Delete", mock.Anything, int64(100)).Return(nil)
	slots.On("DecrementBooked", mock.Anything, int64(7)).Return(slot(2, true), nil)
	activity.On("Append", mock.Anything, mock.Anything).Return(nil)

	uc := NewUseCase(slots, bookings, activity, passTx{}, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{SlotID: 7, BookingID: 100, Actor: domain.AdminActor(1)})

	require.NoError(t, err)
	assert.Equal(t, "disabled", resp.Slot.Status)
}

func TestExecute_BookingOfAnotherSlot(t *testing.T) {
	bookings := &mockBookingRepo{}
	bookings.On("GetByID", mock.Anything, int64(100)).Return(&domain.SlotBooking{ID: 100, SlotID: 8}, nil)

	uc := NewUseCase(&mockSlotRepo{}, bookings, &mockActivityRepo{}, passTx{}, nopLogger{})
	_, err := uc.Execute(context.Background(), &Request{SlotID: 7, BookingID: 100})

	assert.ErrorIs(t, err, ErrBookingNotFound)
	bookings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestExecute_BookingNotFound(t *testing.T) {
	bookings := &mockBookingRepo{}
	bookings.On("GetByID", mock.Anything, int64(100)).Return(nil, bookingRepo.ErrBookingNotFound)

	uc := NewUseCase(&mockSlotRepo{}, bookings, &mockActivityRepo{}, passTx{}, nopLogger{})
	_, err := uc.Execute(context.Background(), &Request{SlotID: 7, BookingID: 100})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_CounterAlreadyZero(t *testing.T) {
	slots := &mockSlotRepo{}
	bookings := &mockBookingRepo{}
	activity := &mockActivityRepo{}
	bookings.On("GetByID", mock.Anything, int64(100)).Return(&domain.SlotBooking{ID: 100, SlotID: 7}, nil)
	bookings.On("Delete", mock.Anything, int64(100)).Return(nil)
	slots.On("DecrementBooked", mock.Anything, int64(7)).Return(nil, slotRepo.ErrSlotNotFound)
	slots.On("GetByID", mock.Anything, int64(7)).Return(slot(0, false), nil)
	activity.On("Append", mock.Anything, mock.Anything).Return(nil)

	uc := NewUseCase(slots, bookings, activity, passTx{}, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{SlotID: 7, BookingID: 100})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Slot.BookedCount)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&mockSlotRepo{}, &mockBookingRepo{}, &mockActivityRepo{}, passTx{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{SlotID: 0, BookingID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
