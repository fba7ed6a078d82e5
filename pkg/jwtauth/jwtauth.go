package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	KindAdmin  = "admin"
	KindParent = "parent"
)

var (
	// ErrInvalidToken токен не разобран или подпись неверна
	ErrInvalidToken = errors.New("jwtauth: invalid token")

	// ErrTokenExpired срок действия токена истек
	ErrTokenExpired = errors.New("jwtauth: token expired")

	// ErrWrongKind токен выдан для другого типа субъекта
	ErrWrongKind = errors.New("jwtauth: wrong token kind")
)

// Claims содержимое токена сотрудника или родительской сессии
type Claims struct {
	Kind   string `json:"kind"`
	UserID int64  `json:"uid,omitempty"`
	Role   string `json:"role,omitempty"`
	Mobile string `json:"mobile,omitempty"`
	jwt.RegisteredClaims
}

// Issuer выпускает и проверяет HS256 токены
type Issuer struct {
	secret    []byte
	adminTTL  time.Duration
	parentTTL time.Duration
	now       func() time.Time
}

// NewIssuer создает Issuer
func NewIssuer(secret string, adminTTL, parentTTL time.Duration) *Issuer {
	return &Issuer{
		secret:    []byte(secret),
		adminTTL:  adminTTL,
		parentTTL: parentTTL,
		now:       time.Now,
	}
}

// WithClock подменяет источник времени (для тестов)
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// ParentTTL время жизни родительской сессии
func (i *Issuer) ParentTTL() time.Duration {
	return i.parentTTL
}

// IssueAdmin выпускает токен сотрудника
func (i *Issuer) IssueAdmin(userID int64, role string) (string, time.Time, error) {
	return i.issue(Claims{Kind: KindAdmin, UserID: userID, Role: role}, i.adminTTL)
}

// IssueParent выпускает токен родительской сессии, привязанной к номеру телефона
func (i *Issuer) IssueParent(mobile string) (string, time.Time, error) {
	return i.issue(Claims{Kind: KindParent, Mobile: mobile}, i.parentTTL)
}

// ParseAdmin проверяет токен сотрудника
func (i *Issuer) ParseAdmin(token string) (*Claims, error) {
	return i.parseKind(token, KindAdmin)
}

// ParseParent проверяет токен родительской сессии
func (i *Issuer) ParseParent(token string) (*Claims, error) {
	return i.parseKind(token, KindParent)
}

func (i *Issuer) issue(claims Claims, ttl time.Duration) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(ttl)

	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwtauth: sign: %w", err)
	}

	return signed, expiresAt, nil
}

func (i *Issuer) parseKind(token, kind string) (*Claims, error) {
	claims := &Claims{}

	// Срок действия проверяем сами, чтобы учитывать подменяемые часы
	parser := jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: true,
	}
	if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.ExpiresAt == nil || !i.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}

	if claims.Kind != kind {
		return nil, ErrWrongKind
	}

	return claims, nil
}
