package enquiries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/middleware"
	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/enquiries"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/enquiries/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockEnquiryService struct{ mock.Mock }

func (m *mockEnquiryService) Submit(ctx context.Context, req *models.SubmitEnquiryRequest) (*models.EnquiryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnquiryResponse), args.Error(1)
}

func (m *mockEnquiryService) GetByID(ctx context.Context, id int64) (*models.EnquiryResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnquiryResponse), args.Error(1)
}

func (m *mockEnquiryService) GetByTokenID(ctx context.Context, tokenID string) (*models.EnquiryResponse, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnquiryResponse), args.Error(1)
}

func (m *mockEnquiryService) List(ctx context.Context, req *models.ListEnquiriesRequest) (*models.EnquiryListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnquiryListResponse), args.Error(1)
}

func (m *mockEnquiryService) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.EnquiryResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnquiryResponse), args.Error(1)
}

func newRouter(svc *mockEnquiryService) *mux.Router {
	h := NewHandler(svc, nopLogger{})

	r := mux.NewRouter()
	r.HandleFunc("/api/enquiry", h.Submit).Methods(http.MethodPost)
	r.HandleFunc("/api/enquiries", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/enquiry/token/{tokenId}", h.GetByToken).Methods(http.MethodGet)
	r.HandleFunc("/api/enquiry/{id}/status", h.UpdateStatus).Methods(http.MethodPut)
	return r
}

const validEnquiry = `{
	"parentName": "Anita Rao",
	"studentName": "Kiran Rao",
	"mobile": "9876543210",
	"email": "parent@school.test",
	"grade": "5",
	"fields": {"previousSchool": "St. Mary"}
}`

func TestHandler_Submit(t *testing.T) {
	svc := &mockEnquiryService{}
	svc.On("Submit", mock.Anything, mock.MatchedBy(func(req *models.SubmitEnquiryRequest) bool {
		return req.ParentName == "Anita Rao" && req.Grade == "5"
	})).Return(&models.EnquiryResponse{ID: 11, TokenID: "ENQ-20260302-AB12CD", Status: "new"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/enquiry", strings.NewReader(validEnquiry))
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success bool                   `json:"success"`
		Message string                 `json:"message"`
		Data    models.EnquiryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, msgSubmitted, body.Message)
	assert.Equal(t, "ENQ-20260302-AB12CD", body.Data.TokenID)
	svc.AssertExpectations(t)
}

func TestHandler_Submit_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantFields int
	}{
		{
			name:       "missing required field",
			body:       `{"parentName":"Anita Rao"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "template validation",
			body: validEnquiry,
			err: fmt.Errorf("%w: %w", enquiries.ErrInvalidInput, domain.FieldErrors{
				{Field: "previousSchool", Message: "is required"},
				{Field: "siblings", Message: "must be a number"},
			}),
			wantStatus: http.StatusBadRequest,
			wantFields: 2,
		},
		{
			name:       "token collision",
			body:       validEnquiry,
			err:        enquiries.ErrTokenCollision,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "storage failure",
			body:       validEnquiry,
			err:        fmt.Errorf("%w: boom", enquiries.ErrInternal),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockEnquiryService{}
			if tt.err != nil {
				svc.On("Submit", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/enquiry", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Success bool                `json:"success"`
				Error   string              `json:"error"`
				Data    []domain.FieldError `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
			assert.Len(t, body.Data, tt.wantFields)
		})
	}
}

func TestHandler_GetByToken_Normalizes(t *testing.T) {
	svc := &mockEnquiryService{}
	svc.On("GetByTokenID", mock.Anything, "ENQ-20260302-AB12CD").
		Return(&models.EnquiryResponse{ID: 11, TokenID: "ENQ-20260302-AB12CD"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/enquiry/token/enq-20260302-ab12cd", nil)
	req = req.WithContext(middleware.WithAdmin(req.Context(), 3, domain.RoleStaff))
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_UpdateStatus(t *testing.T) {
	t.Run("converted is not settable by hand", func(t *testing.T) {
		svc := &mockEnquiryService{}

		req := httptest.NewRequest(http.MethodPut, "/api/enquiry/11/status", strings.NewReader(`{"status":"converted"}`))
		req = req.WithContext(middleware.WithAdmin(req.Context(), 3, domain.RoleStaff))
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mockEnquiryService{}
		svc.On("UpdateStatus", mock.Anything, int64(99), &models.UpdateStatusRequest{ActorID: 3, Status: "contacted"}).
			Return(nil, enquiries.ErrEnquiryNotFound)

		req := httptest.NewRequest(http.MethodPut, "/api/enquiry/99/status", strings.NewReader(`{"status":"contacted"}`))
		req = req.WithContext(middleware.WithAdmin(req.Context(), 3, domain.RoleStaff))
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing staff identity", func(t *testing.T) {
		svc := &mockEnquiryService{}

		req := httptest.NewRequest(http.MethodPut, "/api/enquiry/11/status", strings.NewReader(`{"status":"contacted"}`))
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_List_InvalidLimit(t *testing.T) {
	svc := &mockEnquiryService{}

	req := httptest.NewRequest(http.MethodGet, "/api/enquiries?limit=-5", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
