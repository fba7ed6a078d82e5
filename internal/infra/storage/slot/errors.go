package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotExists возвращается, когда на эту дату уже есть слот с таким временем начала
	ErrSlotExists = errors.New("slot.repository: slot with this start time already exists")

	// ErrSlotUnavailable возвращается, когда условное увеличение счетчика не затронуло строк
	// (слот заполнен, отключен или не существует)
	ErrSlotUnavailable = errors.New("slot.repository: slot is not available for booking")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
