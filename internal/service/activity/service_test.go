package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/activity/models"
	"github.com/m04kA/SMC-AdmissionsService/pkg/ptr"
)

type mockActivityRepo struct{ mock.Mock }

func (m *mockActivityRepo) List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error) {
	args := m.Called(ctx, filter)
	if list, ok := args.Get(0).([]*domain.ActivityLog); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestList_PassesFilter(t *testing.T) {
	repo := &mockActivityRepo{}
	entityType := domain.EntitySlot
	entityID := int64(3)
	repo.On("List", mock.Anything, domain.ActivityFilter{EntityType: &entityType, EntityID: &entityID, Limit: 20}).
		Return([]*domain.ActivityLog{{
			ID:         1,
			Actor:      domain.AdminActor(9),
			Action:     domain.ActionSlotUpdated,
			EntityType: domain.EntitySlot,
			EntityID:   3,
			CreatedAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		}}, nil)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListActivityRequest{EntityType: &entityType, EntityID: &entityID, Limit: 20})

	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "admin", resp.Entries[0].ActorType)
	assert.Equal(t, int64(9), *resp.Entries[0].ActorID)
	repo.AssertExpectations(t)
}

func TestList_RejectsBadFilter(t *testing.T) {
	svc := NewService(&mockActivityRepo{}, nopLogger{})

	_, err := svc.List(context.Background(), &models.ListActivityRequest{EntityType: ptr.Ptr("invoice")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListActivityRequest{EntityID: ptr.Ptr(int64(1))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListActivityRequest{Limit: 500})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_RepositoryError(t *testing.T) {
	repo := &mockActivityRepo{}
	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
	svc := NewService(repo, nopLogger{})

	_, err := svc.List(context.Background(), &models.ListActivityRequest{})

	assert.ErrorIs(t, err, ErrInternal)
}
