package create_admission

import "errors"

var (
	// ErrEnquiryNotFound возвращается, когда обращение не найдено
	ErrEnquiryNotFound = errors.New("create_admission: enquiry not found")

	// ErrEnquiryClosed возвращается, когда обращение закрыто
	ErrEnquiryClosed = errors.New("create_admission: enquiry is closed")

	// ErrAdmissionExists возвращается, когда дело по обращению уже открыто
	ErrAdmissionExists = errors.New("create_admission: admission already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_admission: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_admission: internal error")
)
