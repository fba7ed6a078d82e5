package domain

import "time"

// AdminRole роль сотрудника
type AdminRole string

const (
	RoleAdmin     AdminRole = "admin"
	RoleStaff     AdminRole = "staff"
	RolePrincipal AdminRole = "principal"
)

// AdminUser сотрудник школы
type AdminUser struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         AdminRole
	IsActive     bool
	CreatedAt    time.Time
}

// IsValid проверяет роль
func (r AdminRole) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff || r == RolePrincipal
}

// CanReview может ли роль принимать решения по делам
func (r AdminRole) CanReview() bool {
	return r == RolePrincipal || r == RoleAdmin
}

// CanManageSettings может ли роль менять шаблоны и настройки
func (r AdminRole) CanManageSettings() bool {
	return r == RoleAdmin
}
