// Package tokengen генерирует человекочитаемые идентификаторы обращений и одноразовые коды.
package tokengen

import (
	"math/rand/v2"
	"strings"
	"time"
)

const (
	// TokenPrefix префикс токена обращения
	TokenPrefix = "ENQ"

	tokenAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenSuffixLen  = 6
	tokenDateLayout = "20060102"

	otpMin = 100000
	otpMax = 999999
)

// Generator генератор токенов с подменяемым источником случайности
type Generator struct {
	intN func(n int) int
}

// New создает генератор на стандартном источнике math/rand/v2
func New() *Generator {
	return &Generator{intN: rand.IntN}
}

// NewWithRand создает генератор на переданном источнике (для тестов)
// *rand.Rand не потокобезопасен, такой генератор нельзя делить между горутинами
func NewWithRand(r *rand.Rand) *Generator {
	return &Generator{intN: r.IntN}
}

// TokenID возвращает токен вида ENQ-YYYYMMDD-XXXXXX для даты now
// Проверки коллизий нет, уникальность обеспечивает индекс БД
func (g *Generator) TokenID(now time.Time) string {
	var b strings.Builder
	b.Grow(len(TokenPrefix) + 1 + len(tokenDateLayout) + 1 + tokenSuffixLen)

	b.WriteString(TokenPrefix)
	b.WriteByte('-')
	b.WriteString(now.Format(tokenDateLayout))
	b.WriteByte('-')
	for i := 0; i < tokenSuffixLen; i++ {
		b.WriteByte(tokenAlphabet[g.intN(len(tokenAlphabet))])
	}

	return b.String()
}

// OTP возвращает 6-значный код в диапазоне [100000, 999999]
func (g *Generator) OTP() string {
	n := otpMin + g.intN(otpMax-otpMin+1)
	return itoa6(n)
}

var defaultGenerator = New()

// GenerateTokenID токен обращения на текущую дату
func GenerateTokenID() string {
	return defaultGenerator.TokenID(time.Now())
}

// GenerateOTP одноразовый 6-значный код
func GenerateOTP() string {
	return defaultGenerator.OTP()
}

func itoa6(n int) string {
	var buf [6]byte
	for i := 5; i >= 0; i-- {
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[:])
}
