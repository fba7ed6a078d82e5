package enquiry

import "errors"

var (
	// ErrEnquiryNotFound возвращается, когда обращение не найдено
	ErrEnquiryNotFound = errors.New("enquiry.repository: enquiry not found")

	// ErrDuplicateToken возвращается при совпадении токена обращения
	ErrDuplicateToken = errors.New("enquiry.repository: token id already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("enquiry.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("enquiry.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("enquiry.repository: failed to scan row")
)
