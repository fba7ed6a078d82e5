package otp

import "errors"

var (
	// ErrOTPNotFound возвращается, когда действующего кода нет
	ErrOTPNotFound = errors.New("otp.repository: otp not found")

	// ErrAttemptsExhausted возвращается, когда попытки кода израсходованы или код уже удален
	ErrAttemptsExhausted = errors.New("otp.repository: attempts exhausted")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("otp.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("otp.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("otp.repository: failed to scan row")
)
