package template

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон этого вида не сохранялся
	ErrTemplateNotFound = errors.New("template.repository: template not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("template.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("template.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("template.repository: failed to scan row")

	// ErrEncode возвращается, когда поля шаблона не удалось сериализовать
	ErrEncode = errors.New("template.repository: failed to encode fields")
)
