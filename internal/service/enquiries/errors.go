package enquiries

import "errors"

var (
	// ErrEnquiryNotFound возвращается, когда обращение не найдено
	ErrEnquiryNotFound = errors.New("enquiry not found")

	// ErrTokenCollision возвращается, когда сгенерированный токен уже занят
	// Повтор не выполняется: клиент отправляет форму еще раз
	ErrTokenCollision = errors.New("token id collision, please retry")

	// ErrInvalidStatus возвращается при недопустимом статусе
	ErrInvalidStatus = errors.New("invalid enquiry status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
