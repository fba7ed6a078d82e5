package parents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/pkg/types"
)

type mockEnquiryRepo struct{ mock.Mock }

func (m *mockEnquiryRepo) ListByMobile(ctx context.Context, mobile string) ([]*domain.Enquiry, error) {
	args := m.Called(ctx, mobile)
	if list, ok := args.Get(0).([]*domain.Enquiry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAdmissionRepo struct{ mock.Mock }

func (m *mockAdmissionRepo) ListByMobile(ctx context.Context, mobile string) ([]*domain.Admission, error) {
	args := m.Called(ctx, mobile)
	if list, ok := args.Get(0).([]*domain.Admission); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) ListByTokenIDs(ctx context.Context, tokenIDs []string) ([]*domain.BookingWithSlot, error) {
	args := m.Called(ctx, tokenIDs)
	if list, ok := args.Get(0).([]*domain.BookingWithSlot); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestOverview(t *testing.T) {
	enquiries := &mockEnquiryRepo{}
	admissions := &mockAdmissionRepo{}
	bookings := &mockBookingRepo{}

	enquiries.On("ListByMobile", mock.Anything, "9876543210").Return([]*domain.Enquiry{
		{ID: 1, TokenID: "ENQ-20260301-AAAAAA", Mobile: "9876543210", Status: domain.EnquiryStatusConverted},
		{ID: 2, TokenID: "ENQ-20260302-BBBBBB", Mobile: "9876543210", Status: domain.EnquiryStatusNew},
	}, nil)
	admissions.On("ListByMobile", mock.Anything, "9876543210").Return([]*domain.Admission{
		{ID: 5, EnquiryID: 1, TokenID: "ENQ-20260301-AAAAAA", Status: domain.AdmissionStatusDraft},
	}, nil)
	admissionID := int64(5)
	bookings.On("ListByTokenIDs", mock.Anything, []string{"ENQ-20260301-AAAAAA", "ENQ-20260302-BBBBBB"}).Return([]*domain.BookingWithSlot{{
		Booking: domain.SlotBooking{ID: 9, SlotID: 3, AdmissionID: &admissionID, TokenID: "ENQ-20260301-AAAAAA"},
		Slot: domain.CounsellingSlot{
			ID:          3,
			Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			StartTime:   types.TimeString("10:00"),
			EndTime:     types.TimeString("10:30"),
			Capacity:    3,
			BookedCount: 3,
		},
	}}, nil)

	svc := NewService(enquiries, admissions, bookings, nopLogger{})
	resp, err := svc.Overview(context.Background(), "9876543210")

	require.NoError(t, err)
	assert.Len(t, resp.Enquiries, 2)
	assert.Len(t, resp.Admissions, 1)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "full", resp.Bookings[0].Slot.Status)
	assert.Equal(t, "2026-03-10", resp.Bookings[0].Slot.Date)
	assert.Equal(t, []int{}, resp.Bookings[0].Booking.RemindersSent)
}

func TestOverview_NoEnquiriesSkipsBookings(t *testing.T) {
	enquiries := &mockEnquiryRepo{}
	admissions := &mockAdmissionRepo{}
	bookings := &mockBookingRepo{}
	enquiries.On("ListByMobile", mock.Anything, "9000000000").Return([]*domain.Enquiry{}, nil)
	admissions.On("ListByMobile", mock.Anything, "9000000000").Return([]*domain.Admission{}, nil)

	svc := NewService(enquiries, admissions, bookings, nopLogger{})
	resp, err := svc.Overview(context.Background(), "9000000000")

	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
	assert.NotNil(t, resp.Bookings)
	bookings.AssertNotCalled(t, "ListByTokenIDs", mock.Anything, mock.Anything)
}

func TestOverview_RepositoryError(t *testing.T) {
	enquiries := &mockEnquiryRepo{}
	enquiries.On("ListByMobile", mock.Anything, "9876543210").Return(nil, errors.New("db down"))

	svc := NewService(enquiries, &mockAdmissionRepo{}, &mockBookingRepo{}, nopLogger{})
	_, err := svc.Overview(context.Background(), "9876543210")

	assert.ErrorIs(t, err, ErrInternal)
}
