package admission

import "errors"

var (
	// ErrAdmissionNotFound возвращается, когда дело не найдено
	ErrAdmissionNotFound = errors.New("admission.repository: admission not found")

	// ErrAdmissionExists возвращается, когда по обращению уже открыто дело
	ErrAdmissionExists = errors.New("admission.repository: admission for this enquiry already exists")

	// ErrDocumentNotFound возвращается, когда документ не найден
	ErrDocumentNotFound = errors.New("admission.repository: document not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("admission.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("admission.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("admission.repository: failed to scan row")
)
