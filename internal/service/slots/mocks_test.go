package slots

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

type mockSlotRepo struct{ mock.Mock }

func (m *mockSlotRepo) Create(ctx context.Context, slot *domain.CounsellingSlot) (*domain.CounsellingSlot, error) {
	args := m.Called(ctx, slot)
	if fn, ok := args.Get(0).(func(context.Context, *domain.CounsellingSlot) *domain.CounsellingSlot); ok {
		return fn(ctx, slot), args.Error(1)
	}
	if s, ok := args.Get(0).(*domain.CounsellingSlot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id int64) (*domain.CounsellingSlot, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*domain.CounsellingSlot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSlotRepo) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.CounsellingSlot, error) {
	args := m.Called(ctx, filter)
	if s, ok := args.Get(0).([]*domain.CounsellingSlot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSlotRepo) Update(ctx context.Context, slot *domain.CounsellingSlot) (*domain.CounsellingSlot, error) {
	args := m.Called(ctx, slot)
	if fn, ok := args.Get(0).(func(context.Context, *domain.CounsellingSlot) *domain.CounsellingSlot); ok {
		return fn(ctx, slot), args.Error(1)
	}
	if s, ok := args.Get(0).(*domain.CounsellingSlot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) ListBySlot(ctx context.Context, slotID int64) ([]*domain.SlotBooking, error) {
	args := m.Called(ctx, slotID)
	if b, ok := args.Get(0).([]*domain.SlotBooking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) Get(ctx context.Context) (*domain.SlotSettings, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*domain.SlotSettings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSettingsRepo) Upsert(ctx context.Context, settings *domain.SlotSettings) (*domain.SlotSettings, error) {
	args := m.Called(ctx, settings)
	if fn, ok := args.Get(0).(func(context.Context, *domain.SlotSettings) *domain.SlotSettings); ok {
		return fn(ctx, settings), args.Error(1)
	}
	if s, ok := args.Get(0).(*domain.SlotSettings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockActivityRepo struct{ mock.Mock }

func (m *mockActivityRepo) Append(ctx context.Context, entry *domain.ActivityLog) error {
	return m.Called(ctx, entry).Error(0)
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
