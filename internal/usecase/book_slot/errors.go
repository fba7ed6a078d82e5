package book_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("book_slot: slot not found")

	// ErrSlotFull возвращается, когда все места в слоте заняты
	ErrSlotFull = errors.New("book_slot: slot is full")

	// ErrSlotDisabled возвращается, когда слот отключен сотрудником
	ErrSlotDisabled = errors.New("book_slot: slot is disabled")

	// ErrSlotInPast возвращается при записи на уже начавшийся слот
	ErrSlotInPast = errors.New("book_slot: slot has already started")

	// ErrAlreadyBooked возвращается, когда по делу или обращению уже есть запись
	ErrAlreadyBooked = errors.New("book_slot: already booked")

	// ErrAdmissionNotFound возвращается, когда дело не найдено
	ErrAdmissionNotFound = errors.New("book_slot: admission not found")

	// ErrEnquiryNotFound возвращается, когда обращение не найдено
	ErrEnquiryNotFound = errors.New("book_slot: enquiry not found")

	// ErrEnquiryClosed возвращается при записи по закрытому обращению
	ErrEnquiryClosed = errors.New("book_slot: enquiry is closed")

	// ErrAccessDenied возвращается, когда родитель записывает чужое дело
	ErrAccessDenied = errors.New("book_slot: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)
