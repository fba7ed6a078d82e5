package otp

// SendRequest HTTP request model
type SendRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

// VerifyRequest HTTP request model
type VerifyRequest struct {
	Mobile string `json:"mobile" validate:"required"`
	OTP    string `json:"otp" validate:"required,numeric,len=6"`
}
