package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	adminUserRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/adminuser"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/auth/models"
	"github.com/m04kA/SMC-AdmissionsService/pkg/jwtauth"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *domain.AdminUser) (*domain.AdminUser, error) {
	args := m.Called(ctx, u)
	u.ID = 1
	return u, args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.AdminUser); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.AdminUser); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func userWithPassword(t *testing.T, password string) *domain.AdminUser {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.AdminUser{
		ID:           4,
		Email:        "principal@school.test",
		Name:         "Principal",
		PasswordHash: string(hash),
		Role:         domain.RolePrincipal,
		IsActive:     true,
	}
}

func newService(repo *mockUserRepo) (*Service, *jwtauth.Issuer) {
	issuer := jwtauth.NewIssuer("test-secret", time.Hour, 20*time.Minute)
	return NewService(repo, issuer, nopLogger{}).WithBcryptCost(bcrypt.MinCost), issuer
}

func TestLogin_Success(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, "principal@school.test").Return(userWithPassword(t, "s3cret-pass"), nil)
	svc, issuer := newService(repo)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: " principal@school.test ", Password: "s3cret-pass"})

	require.NoError(t, err)
	assert.Equal(t, "principal", resp.User.Role)

	claims, err := issuer.ParseAdmin(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(4), claims.UserID)
	assert.Equal(t, "principal", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(userWithPassword(t, "s3cret-pass"), nil)
	svc, _ := newService(repo)

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "principal@school.test", Password: "nope"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, adminUserRepo.ErrUserNotFound)
	svc, _ := newService(repo)

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "x@y.z", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Inactive(t *testing.T) {
	repo := &mockUserRepo{}
	user := userWithPassword(t, "s3cret-pass")
	user.IsActive = false
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(user, nil)
	svc, _ := newService(repo)

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "principal@school.test", Password: "s3cret-pass"})

	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestEnsureBootstrapAdmin_SkipsWhenUsersExist(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("Count", mock.Anything).Return(2, nil)
	svc, _ := newService(repo)

	created, err := svc.EnsureBootstrapAdmin(context.Background(), &models.BootstrapAdminRequest{})

	require.NoError(t, err)
	assert.False(t, created)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEnsureBootstrapAdmin_CreatesAdmin(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("Count", mock.Anything).Return(0, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.AdminUser) bool {
		return u.Role == domain.RoleAdmin &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("bootstrap-pass")) == nil
	})).Return(nil)
	svc, _ := newService(repo)

	created, err := svc.EnsureBootstrapAdmin(context.Background(), &models.BootstrapAdminRequest{
		Email:    "admin@school.test",
		Password: "bootstrap-pass",
	})

	require.NoError(t, err)
	assert.True(t, created)
	repo.AssertExpectations(t)
}

func TestEnsureBootstrapAdmin_ShortPassword(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("Count", mock.Anything).Return(0, nil)
	svc, _ := newService(repo)

	_, err := svc.EnsureBootstrapAdmin(context.Background(), &models.BootstrapAdminRequest{
		Email:    "admin@school.test",
		Password: "short",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestActiveRole(t *testing.T) {
	inactive := userWithPassword(t, "s3cret-pass")
	inactive.IsActive = false

	tests := []struct {
		name       string
		user       *domain.AdminUser
		repoErr    error
		wantRole   domain.AdminRole
		wantActive bool
		wantErr    error
	}{
		{name: "active user", user: userWithPassword(t, "s3cret-pass"), wantRole: domain.RolePrincipal, wantActive: true},
		{name: "deactivated user", user: inactive},
		{name: "deleted user", repoErr: adminUserRepo.ErrUserNotFound},
		{name: "repository failure", repoErr: errors.New("db down"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepo{}
			repo.On("GetByID", mock.Anything, int64(4)).Return(tt.user, tt.repoErr)
			svc, _ := newService(repo)

			role, active, err := svc.ActiveRole(context.Background(), 4)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, role)
			assert.Equal(t, tt.wantActive, active)
		})
	}
}
