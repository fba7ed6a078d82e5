package domain

import "time"

// OTP одноразовый код подтверждения телефона
// Код хранится только в виде хэша
type OTP struct {
	ID          int64
	Mobile      string
	CodeHash    string
	Attempts    int
	MaxAttempts int
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// IsExpired истек ли срок действия кода
func (o *OTP) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// AttemptsExhausted исчерпаны ли попытки ввода
func (o *OTP) AttemptsExhausted() bool {
	return o.Attempts >= o.MaxAttempts
}

// AttemptsLeft оставшиеся попытки
func (o *OTP) AttemptsLeft() int {
	left := o.MaxAttempts - o.Attempts
	if left < 0 {
		return 0
	}
	return left
}

// ParentSession сессия родителя после подтверждения телефона
type ParentSession struct {
	Mobile    string
	Token     string
	ExpiresAt time.Time
}
