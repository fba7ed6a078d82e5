package activity

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном фильтре
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
