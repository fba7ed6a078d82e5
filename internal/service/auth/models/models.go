package models

import (
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// LoginRequest вход сотрудника
type LoginRequest struct {
	Email    string
	Password string
}

// BootstrapAdminRequest учетная запись, создаваемая при пустой таблице сотрудников
type BootstrapAdminRequest struct {
	Email    string
	Password string
	Name     string
}

// UserResponse сотрудник
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse токен и профиль сотрудника
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// FromDomainUser конвертирует domain модель в DTO (без хэша пароля)
func FromDomainUser(u *domain.AdminUser) *UserResponse {
	if u == nil {
		return nil
	}

	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
