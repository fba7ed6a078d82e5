package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotExists возвращается, когда на эту дату уже есть слот с таким временем начала
	ErrSlotExists = errors.New("slot with this start time already exists")

	// ErrSlotInPast возвращается при создании или переносе слота на прошедшую дату
	ErrSlotInPast = errors.New("slot date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
