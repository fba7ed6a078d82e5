package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/pkg/jwtauth"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) handlers.Envelope {
	t.Helper()
	var env handlers.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAdminAuth(t *testing.T) {
	issuer := jwtauth.NewIssuer("secret", time.Hour, time.Minute)
	adminToken, _, err := issuer.IssueAdmin(7, string(domain.RoleStaff))
	require.NoError(t, err)
	parentToken, _, err := issuer.IssueParent("+911234567890")
	require.NoError(t, err)

	var gotID int64
	var gotRole domain.AdminRole
	h := AdminAuth(issuer, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r.Context())
		gotRole, _ = GetRole(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid admin token", header: "Bearer " + adminToken, status: http.StatusNoContent},
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + adminToken, status: http.StatusUnauthorized},
		{name: "parent token", header: "Bearer " + parentToken, status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not-a-jwt", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusUnauthorized {
				env := decodeEnvelope(t, rec)
				assert.False(t, env.Success)
				assert.NotEmpty(t, env.Error)
			}
		})
	}

	assert.Equal(t, int64(7), gotID)
	assert.Equal(t, domain.RoleStaff, gotRole)
}

type stubAccounts struct {
	role   domain.AdminRole
	active bool
	err    error
}

func (s stubAccounts) ActiveRole(context.Context, int64) (domain.AdminRole, bool, error) {
	return s.role, s.active, s.err
}

func TestAdminAuth_ChecksAccount(t *testing.T) {
	issuer := jwtauth.NewIssuer("secret", time.Hour, time.Minute)
	token, _, err := issuer.IssueAdmin(7, string(domain.RoleAdmin))
	require.NoError(t, err)

	tests := []struct {
		name     string
		accounts stubAccounts
		status   int
		wantRole domain.AdminRole
	}{
		{name: "active account keeps access", accounts: stubAccounts{role: domain.RoleAdmin, active: true}, status: http.StatusNoContent, wantRole: domain.RoleAdmin},
		{name: "demoted account gets current role", accounts: stubAccounts{role: domain.RoleStaff, active: true}, status: http.StatusNoContent, wantRole: domain.RoleStaff},
		{name: "deactivated account is rejected", accounts: stubAccounts{}, status: http.StatusUnauthorized},
		{name: "lookup failure", accounts: stubAccounts{err: errors.New("db down")}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRole domain.AdminRole
			h := AdminAuth(issuer, tt.accounts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotRole, _ = GetRole(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.wantRole, gotRole)
			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, msgAccountOff, decodeEnvelope(t, rec).Error)
			}
		})
	}
}

func TestParentAuth_ExpiredSession(t *testing.T) {
	issued := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	issuer := jwtauth.NewIssuer("secret", time.Hour, 20*time.Minute).WithClock(func() time.Time { return issued })
	token, _, err := issuer.IssueParent("+911234567890")
	require.NoError(t, err)

	issuer.WithClock(func() time.Time { return issued.Add(21 * time.Minute) })

	h := ParentAuth(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/parent/overview", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgSessionExpired, decodeEnvelope(t, rec).Error)
}

func TestParentAuth_PutsMobileInContext(t *testing.T) {
	issuer := jwtauth.NewIssuer("secret", time.Hour, 20*time.Minute)
	token, _, err := issuer.IssueParent("+911234567890")
	require.NoError(t, err)

	var mobile string
	h := ParentAuth(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mobile, _ = GetParentMobile(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/parent/overview", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "+911234567890", mobile)
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(domain.RolePrincipal, domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		role   domain.AdminRole
		anon   bool
		status int
	}{
		{name: "principal", role: domain.RolePrincipal, status: http.StatusOK},
		{name: "admin", role: domain.RoleAdmin, status: http.StatusOK},
		{name: "staff", role: domain.RoleStaff, status: http.StatusForbidden},
		{name: "anonymous", anon: true, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admission/1/review", nil)
			if !tt.anon {
				req = req.WithContext(WithAdmin(req.Context(), 1, tt.role))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

type recordedMetrics struct {
	mu    sync.Mutex
	paths []string
	codes []int
}

func (m *recordedMetrics) ObserveHTTP(method, path string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = append(m.paths, method+" "+path)
	m.codes = append(m.codes, status)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &recordedMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/slots/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}).Methods(http.MethodPut)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/api/slots/42", nil))

	require.Len(t, m.paths, 1)
	assert.Equal(t, "PUT /api/slots/{id}", m.paths[0])
	assert.Equal(t, http.StatusAccepted, m.codes[0])
}

func TestAccessLog_RequestID(t *testing.T) {
	var seen string
	h := AccessLog(nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/slots", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
	})

	t.Run("propagated", func(t *testing.T) {
		const incoming = "5f0c8a4e-2b7d-4c1a-9f3e-1d2c3b4a5e6f"
		req := httptest.NewRequest(http.MethodGet, "/api/slots", nil)
		req.Header.Set(HeaderRequestID, incoming)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, incoming, seen)
		assert.Equal(t, incoming, rec.Header().Get(HeaderRequestID))
	})
}
