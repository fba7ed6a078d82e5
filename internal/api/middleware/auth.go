package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/pkg/jwtauth"
)

const (
	msgMissingToken   = "требуется авторизация"
	msgInvalidToken   = "недействительный токен"
	msgSessionExpired = "сессия истекла, войдите снова"
	msgForbidden      = "доступ запрещен"
	msgAccountOff     = "учетная запись отключена"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	roleKey   contextKey = "role"
	mobileKey contextKey = "mobile"
)

// TokenParser проверяет токены сотрудников и родительских сессий
type TokenParser interface {
	ParseAdmin(token string) (*jwtauth.Claims, error)
	ParseParent(token string) (*jwtauth.Claims, error)
}

// AccountChecker сверяет сотрудника из токена с БД
type AccountChecker interface {
	ActiveRole(ctx context.Context, userID int64) (domain.AdminRole, bool, error)
}

// AdminAuth требует Bearer токен сотрудника и кладет id и роль в контекст
// С accounts отключенный сотрудник теряет доступ сразу, а роль берется из БД;
// без accounts роль из токена действует до его истечения
func AdminAuth(parser TokenParser, accounts AccountChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := parser.ParseAdmin(token)
			if err != nil {
				respondTokenError(w, err)
				return
			}

			role := domain.AdminRole(claims.Role)
			if accounts != nil {
				current, active, err := accounts.ActiveRole(r.Context(), claims.UserID)
				if err != nil {
					handlers.RespondInternalError(w)
					return
				}
				if !active {
					handlers.RespondUnauthorized(w, msgAccountOff)
					return
				}
				role = current
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает только перечисленные роли; ставится после AdminAuth
func RequireRole(roles ...domain.AdminRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRole(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}

// ParentAuth требует токен родительской сессии и кладет номер телефона в контекст
func ParentAuth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := parser.ParseParent(token)
			if err != nil {
				respondTokenError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), mobileKey, claims.Mobile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID извлекает id сотрудника из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetRole извлекает роль сотрудника из контекста
func GetRole(ctx context.Context) (domain.AdminRole, bool) {
	role, ok := ctx.Value(roleKey).(domain.AdminRole)
	return role, ok
}

// GetParentMobile извлекает номер телефона родительской сессии
func GetParentMobile(ctx context.Context) (string, bool) {
	mobile, ok := ctx.Value(mobileKey).(string)
	return mobile, ok && mobile != ""
}

// WithAdmin кладет сотрудника в контекст (для тестов обработчиков)
func WithAdmin(ctx context.Context, userID int64, role domain.AdminRole) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// WithParent кладет номер родительской сессии в контекст (для тестов обработчиков)
func WithParent(ctx context.Context, mobile string) context.Context {
	return context.WithValue(ctx, mobileKey, mobile)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func respondTokenError(w http.ResponseWriter, err error) {
	if errors.Is(err, jwtauth.ErrTokenExpired) {
		handlers.RespondUnauthorized(w, msgSessionExpired)
		return
	}
	handlers.RespondUnauthorized(w, msgInvalidToken)
}
