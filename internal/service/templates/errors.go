package templates

import "errors"

var (
	// ErrUnknownKind возвращается для неизвестного вида шаблона
	ErrUnknownKind = errors.New("unknown template kind")

	// ErrInvalidInput возвращается при некорректном описании полей
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
