package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testInvite() Invite {
	return Invite{
		BookingID:   42,
		TokenID:     "ENQ-20260301-ABC123",
		ParentEmail: "parent@example.com",
		ParentName:  "Anita",
		StudentName: "Ravi",
		Mobile:      "9876543210",
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "10:30",
	}
}

func TestClient_SendOTP(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "Bearer gw-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "gw-token", "principal@school.test", time.Second, nopLogger{})
	err := c.SendOTP(context.Background(), "9876543210", "123456", 15*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, ChannelSMS, got.Channel)
	assert.Equal(t, "9876543210", got.To)
	assert.Equal(t, "123456", got.Data["code"])
	assert.Equal(t, "15", got.Data["ttlMinutes"])
}

func TestClient_PrincipalInviteGoesToPrincipal(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "principal@school.test", time.Second, nopLogger{})
	require.NoError(t, c.SendPrincipalInvite(context.Background(), testInvite()))

	assert.Equal(t, "principal@school.test", got.To)
	assert.Equal(t, TemplatePrincipalInvite, got.Template)
	assert.Equal(t, "2026-03-10", got.Data["date"])
	assert.Equal(t, "42", got.Data["bookingId"])
}

func TestClient_Reminder(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", time.Second, nopLogger{})
	require.NoError(t, c.SendReminder(context.Background(), testInvite(), 2))

	assert.Equal(t, "parent@example.com", got.To)
	assert.Equal(t, "2", got.Data["daysBefore"])
}

func TestClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"code":422,"message":"bad mobile"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", time.Second, nopLogger{})

	err := c.SendOTP(context.Background(), "9876543210", "123456", time.Minute)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "bad mobile")

	err = c.SendPrincipalInvite(context.Background(), testInvite())
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", time.Second, nopLogger{})
	err := c.SendCalendarInvite(context.Background(), testInvite())

	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestConsole(t *testing.T) {
	c := NewConsole("", nopLogger{})

	assert.NoError(t, c.SendOTP(context.Background(), "9876543210", "123456", time.Minute))
	assert.NoError(t, c.SendCalendarInvite(context.Background(), testInvite()))
	assert.ErrorIs(t, c.SendPrincipalInvite(context.Background(), testInvite()), ErrNoRecipient)
}
