package templates

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	templateRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/template"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/templates/models"
)

type mockTemplateRepo struct{ mock.Mock }

func (m *mockTemplateRepo) Get(ctx context.Context, kind domain.TemplateKind) (*domain.FormTemplate, error) {
	args := m.Called(ctx, kind)
	if t, ok := args.Get(0).(*domain.FormTemplate); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTemplateRepo) Upsert(ctx context.Context, t *domain.FormTemplate) (*domain.FormTemplate, error) {
	args := m.Called(ctx, t)
	return t, args.Error(0)
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

func TestGet_FallsBackToDefault(t *testing.T) {
	repo := &mockTemplateRepo{}
	repo.On("Get", mock.Anything, domain.TemplateDocuments).Return(nil, templateRepo.ErrTemplateNotFound)
	svc := NewService(repo, &mockActivityRepo{}, passTx{}, nopLogger{})

	resp, err := svc.Get(context.Background(), "documents")

	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.NotEmpty(t, resp.Fields)
}

func TestGet_UnknownKind(t *testing.T) {
	svc := NewService(&mockTemplateRepo{}, &mockActivityRepo{}, passTx{}, nopLogger{})

	_, err := svc.Get(context.Background(), "report")

	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestGet_RepositoryError(t *testing.T) {
	repo := &mockTemplateRepo{}
	repo.On("Get", mock.Anything, domain.TemplateEnquiry).Return(nil, errors.New("conn reset"))
	svc := NewService(repo, &mockActivityRepo{}, passTx{}, nopLogger{})

	_, err := svc.Get(context.Background(), "enquiry")

	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdate_RejectsSelectWithoutOptions(t *testing.T) {
	repo := &mockTemplateRepo{}
	svc := NewService(repo, &mockActivityRepo{}, passTx{}, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateTemplateRequest{
		ActorID: 1,
		Kind:    "enquiry",
		Fields:  []domain.TemplateField{{Name: "source", Label: "Source", Type: domain.FieldSelect}},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdate_Saves(t *testing.T) {
	repo := &mockTemplateRepo{}
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	activity := &mockActivityRepo{}
	activity.On("Append", mock.Anything, mock.MatchedBy(func(e *domain.ActivityLog) bool {
		return e.Action == domain.ActionTemplateUpdated
	})).Return(nil)
	svc := NewService(repo, activity, passTx{}, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateTemplateRequest{
		ActorID: 1,
		Kind:    "admission",
		Fields:  []domain.TemplateField{{Name: "bloodGroup", Label: "Blood group", Type: domain.FieldText}},
	})

	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Len(t, resp.Fields, 1)
	activity.AssertExpectations(t)
}
