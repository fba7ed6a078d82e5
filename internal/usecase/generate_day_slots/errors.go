package generate_day_slots

import "errors"

var (
	// ErrDateInPast возвращается при генерации слотов на прошедшую дату
	ErrDateInPast = errors.New("generate_day_slots: date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_day_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_day_slots: internal error")
)
