package cancel_slot_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена в указанном слоте
	ErrBookingNotFound = errors.New("cancel_slot_booking: booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_slot_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_slot_booking: internal error")
)
