package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	adminUserRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/adminuser"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/auth/models"
)

const minPasswordLength = 8

// Service сервис входа сотрудников
type Service struct {
	userRepo AdminUserRepository
	issuer   TokenIssuer
	cost     int
	logger   Logger
}

// NewService создает новый экземпляр сервиса входа
func NewService(userRepo AdminUserRepository, issuer TokenIssuer, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		issuer:   issuer,
		cost:     bcrypt.DefaultCost,
		logger:   logger,
	}
}

// WithBcryptCost задает стоимость bcrypt (в тестах bcrypt.MinCost)
func (s *Service) WithBcryptCost(cost int) *Service {
	s.cost = cost
	return s
}

// Login проверяет e-mail и пароль и выпускает токен
// Неизвестный e-mail и неверный пароль неразличимы для клиента
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	s.logger.Info("Login: attempt for email=%s", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, adminUserRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		s.logger.Warn("Login: user id=%d is inactive", user.ID)
		return nil, ErrUserInactive
	}

	token, expiresAt, err := s.issuer.IssueAdmin(user.ID, string(user.Role))
	if err != nil {
		s.logger.Error("Login: failed to issue token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%d logged in", user.ID)
	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *models.FromDomainUser(user),
	}, nil
}

// Me получает профиль сотрудника из токена
func (s *Service) Me(ctx context.Context, userID int64) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, adminUserRepo.ErrUserNotFound) {
			s.logger.Warn("Me: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("Me: repository error for user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Me - repository error: %v", ErrInternal, err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return models.FromDomainUser(user), nil
}

// ActiveRole возвращает текущую роль сотрудника по данным БД
// Отключенная или удаленная учетная запись дает active=false
func (s *Service) ActiveRole(ctx context.Context, userID int64) (domain.AdminRole, bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, adminUserRepo.ErrUserNotFound) {
			s.logger.Warn("ActiveRole: user id=%d not found", userID)
			return "", false, nil
		}
		s.logger.Error("ActiveRole: repository error for user id=%d: %v", userID, err)
		return "", false, fmt.Errorf("%w: ActiveRole - repository error: %v", ErrInternal, err)
	}
	if !user.IsActive {
		s.logger.Warn("ActiveRole: user id=%d is inactive", userID)
		return "", false, nil
	}

	return user.Role, true, nil
}

// EnsureBootstrapAdmin создает первого администратора, если сотрудников еще нет
// Возвращает true, если учетная запись была создана
func (s *Service) EnsureBootstrapAdmin(ctx context.Context, req *models.BootstrapAdminRequest) (bool, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: EnsureBootstrapAdmin - count users: %v", ErrInternal, err)
	}
	if count > 0 {
		return false, nil
	}

	if strings.TrimSpace(req.Email) == "" || len(req.Password) < minPasswordLength {
		return false, fmt.Errorf("%w: bootstrap admin needs an email and a password of at least %d characters",
			ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return false, fmt.Errorf("%w: EnsureBootstrapAdmin - hash password: %v", ErrInternal, err)
	}

	name := req.Name
	if name == "" {
		name = "Administrator"
	}

	user, err := s.userRepo.Create(ctx, &domain.AdminUser{
		Email:        req.Email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, adminUserRepo.ErrEmailTaken) {
			// параллельный запуск второго экземпляра успел создать запись
			return false, nil
		}
		return false, fmt.Errorf("%w: EnsureBootstrapAdmin - create user: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureBootstrapAdmin: created admin id=%d, email=%s", user.ID, user.Email)
	return true, nil
}
