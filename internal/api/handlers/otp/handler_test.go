package otp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/otp"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/otp/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockOTPService struct{ mock.Mock }

func (m *mockOTPService) Send(ctx context.Context, mobile string) (*models.SendResponse, error) {
	args := m.Called(ctx, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SendResponse), args.Error(1)
}

func (m *mockOTPService) Verify(ctx context.Context, mobile, code string) (*models.VerifyResponse, error) {
	args := m.Called(ctx, mobile, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerifyResponse), args.Error(1)
}

func call(t *testing.T, handle http.HandlerFunc, body string) (*httptest.ResponseRecorder, handlers.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	handle(rec, httptest.NewRequest(http.MethodPost, "/api/otp", strings.NewReader(body)))

	var env handlers.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestSend(t *testing.T) {
	svc := &mockOTPService{}
	h := NewHandler(svc, nopLogger{})

	expires := time.Date(2025, 3, 1, 10, 15, 0, 0, time.UTC)
	svc.On("Send", mock.Anything, "+91 98765 43210").
		Return(&models.SendResponse{Mobile: "+919876543210", ExpiresAt: expires}, nil)

	rec, env := call(t, h.Send, `{"mobile":"+91 98765 43210"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, msgOTPSent, env.Message)
	assert.NotContains(t, rec.Body.String(), `"otp"`)
}

func TestSend_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid mobile", err: otp.ErrInvalidMobile, status: http.StatusBadRequest},
		{name: "cooldown", err: otp.ErrResendTooSoon, status: http.StatusTooManyRequests},
		{name: "delivery", err: otp.ErrDelivery, status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockOTPService{}
			svc.On("Send", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec, env := call(t, NewHandler(svc, nopLogger{}).Send, `{"mobile":"9876543210"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		err     error
		status  int
		message string
	}{
		{name: "not six digits", body: `{"mobile":"9876543210","otp":"12ab"}`, status: http.StatusBadRequest, message: msgInvalidRequestBody},
		{name: "expired", body: `{"mobile":"9876543210","otp":"123456"}`, err: otp.ErrOTPNotFound, status: http.StatusNotFound, message: msgOTPNotFound},
		{name: "mismatch", body: `{"mobile":"9876543210","otp":"123456"}`, err: otp.ErrInvalidCode, status: http.StatusUnauthorized, message: msgInvalidCode},
		{name: "exhausted", body: `{"mobile":"9876543210","otp":"123456"}`, err: otp.ErrAttemptsExhausted, status: http.StatusTooManyRequests, message: msgAttemptsExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockOTPService{}
			svc.On("Verify", mock.Anything, "9876543210", "123456").Return(nil, tt.err)

			rec, env := call(t, NewHandler(svc, nopLogger{}).Verify, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, env.Error)
		})
	}

	t.Run("success returns session token", func(t *testing.T) {
		svc := &mockOTPService{}
		svc.On("Verify", mock.Anything, "9876543210", "123456").
			Return(&models.VerifyResponse{Mobile: "9876543210", Token: "jwt"}, nil)

		rec, env := call(t, NewHandler(svc, nopLogger{}).Verify, `{"mobile":"9876543210","otp":"123456"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "jwt", env.Data.(map[string]interface{})["token"])
	})
}
