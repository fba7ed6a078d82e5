package models

import "time"

// SendResponse результат отправки кода
type SendResponse struct {
	Mobile      string    `json:"mobile"`
	ExpiresAt   time.Time `json:"expiresAt"`
	ResendAfter time.Time `json:"resendAfter"`
}

// VerifyResponse родительская сессия после подтверждения
type VerifyResponse struct {
	Mobile    string    `json:"mobile"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
