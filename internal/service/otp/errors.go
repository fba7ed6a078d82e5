package otp

import "errors"

var (
	// ErrInvalidMobile возвращается при некорректном номере телефона
	ErrInvalidMobile = errors.New("invalid mobile number")

	// ErrResendTooSoon возвращается при повторном запросе кода раньше паузы
	ErrResendTooSoon = errors.New("otp was sent recently, try again later")

	// ErrOTPNotFound возвращается, когда действующего кода нет (в том числе просроченного)
	ErrOTPNotFound = errors.New("otp not found or expired")

	// ErrInvalidCode возвращается при неверном коде
	ErrInvalidCode = errors.New("invalid otp code")

	// ErrAttemptsExhausted возвращается, когда попытки ввода исчерпаны
	ErrAttemptsExhausted = errors.New("otp attempts exhausted")

	// ErrDelivery возвращается, когда код не удалось доставить
	ErrDelivery = errors.New("failed to deliver otp")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
