package send_reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AdmissionsService/internal/integrations/notifier"
	"github.com/m04kA/SMC-AdmissionsService/pkg/types"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) ListUpcoming(ctx context.Context, from, to time.Time) ([]*domain.BookingWithSlot, error) {
	args := m.Called(ctx, from, to)
	if list, ok := args.Get(0).([]*domain.BookingWithSlot); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) AddReminderSent(ctx context.Context, id int64, days int) error {
	return m.Called(ctx, id, days).Error(0)
}

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) Get(ctx context.Context) (*domain.SlotSettings, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*domain.SlotSettings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendReminder(ctx context.Context, invite notifier.Invite, daysBefore int) error {
	return m.Called(ctx, invite, daysBefore).Error(0)
}

type countingMetrics struct{ n int }

func (c *countingMetrics) IncReminder() { c.n++ }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2026, 3, 2+offset, 0, 0, 0, 0, time.UTC)
}

func bookingOn(id int64, date time.Time, sent ...int) *domain.BookingWithSlot {
	return &domain.BookingWithSlot{
		Booking: domain.SlotBooking{ID: id, SlotID: 1, TokenID: "ENQ-20260301-ABC123", ParentEmail: "p@example.com", RemindersSent: sent},
		Slot:    domain.CounsellingSlot{ID: 1, Date: date, StartTime: types.TimeString("10:00"), EndTime: types.TimeString("10:30"), Capacity: 3},
	}
}

func TestExecute_SendsOncePerOffset(t *testing.T) {
	bookings := &mockBookingRepo{}
	settings := &mockSettingsRepo{}
	notify := &mockNotifier{}
	metrics := &countingMetrics{}

	stored := domain.DefaultSlotSettings()
	stored.ReminderDays = []int{1, 3}
	settings.On("Get", mock.Anything).Return(&stored, nil)
	bookings.On("ListUpcoming", mock.Anything, day(1), day(1)).Return([]*domain.BookingWithSlot{
		bookingOn(10, day(1)),
		bookingOn(11, day(1), 1),
	}, nil)
	bookings.On("ListUpcoming", mock.Anything, day(3), day(3)).Return([]*domain.BookingWithSlot{
		bookingOn(12, day(3)),
	}, nil)
	notify.On("SendReminder", mock.Anything, mock.MatchedBy(func(i notifier.Invite) bool { return i.BookingID == 10 }), 1).Return(nil)
	notify.On("SendReminder", mock.Anything, mock.MatchedBy(func(i notifier.Invite) bool { return i.BookingID == 12 }), 3).Return(nil)
	bookings.On("AddReminderSent", mock.Anything, int64(10), 1).Return(nil)
	bookings.On("AddReminderSent", mock.Anything, int64(12), 3).Return(nil)

	uc := NewUseCase(bookings, settings, notify, metrics, nopLogger{}).WithTimeProvider(fixedTime{now})
	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Checked)
	assert.Equal(t, 2, resp.Sent)
	assert.Equal(t, 0, resp.Failed)
	assert.Equal(t, 2, metrics.n)
	notify.AssertNumberOfCalls(t, "SendReminder", 2)
	bookings.AssertExpectations(t)
}

func TestExecute_DeliveryFailureIsNotRecorded(t *testing.T) {
	bookings := &mockBookingRepo{}
	settings := &mockSettingsRepo{}
	notify := &mockNotifier{}

	settings.On("Get", mock.Anything).Return(nil, settingsRepo.ErrSettingsNotFound)
	bookings.On("ListUpcoming", mock.Anything, day(1), day(1)).Return([]*domain.BookingWithSlot{bookingOn(10, day(1))}, nil)
	notify.On("SendReminder", mock.Anything, mock.Anything, 1).Return(errors.New("smtp down"))

	uc := NewUseCase(bookings, settings, notify, &countingMetrics{}, nopLogger{}).WithTimeProvider(fixedTime{now})
	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Failed)
	bookings.AssertNotCalled(t, "AddReminderSent", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ListError(t *testing.T) {
	bookings := &mockBookingRepo{}
	settings := &mockSettingsRepo{}
	settings.On("Get", mock.Anything).Return(nil, settingsRepo.ErrSettingsNotFound)
	bookings.On("ListUpcoming", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	uc := NewUseCase(bookings, settings, &mockNotifier{}, &countingMetrics{}, nopLogger{}).WithTimeProvider(fixedTime{now})
	_, err := uc.Execute(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}
