package admissions

import "errors"

var (
	// ErrAdmissionNotFound возвращается, когда дело не найдено
	ErrAdmissionNotFound = errors.New("admission not found")

	// ErrDocumentNotFound возвращается, когда документ не найден
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNotEditable возвращается при изменении дела после решения директора
	ErrNotEditable = errors.New("admission can no longer be edited")

	// ErrMissingDocuments возвращается при подаче дела без обязательных документов
	ErrMissingDocuments = errors.New("required documents are missing")

	// ErrCannotReview возвращается, когда дело не в статусе submitted
	ErrCannotReview = errors.New("only submitted admissions can be reviewed")

	// ErrAccessDenied возвращается, когда роль сотрудника не позволяет принять решение
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus возвращается при недопустимом статусе или решении
	ErrInvalidStatus = errors.New("invalid admission status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
