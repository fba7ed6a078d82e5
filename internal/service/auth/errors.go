package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном e-mail или пароле
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserInactive возвращается, когда учетная запись отключена
	ErrUserInactive = errors.New("user is inactive")

	// ErrUserNotFound возвращается, когда сотрудник не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
