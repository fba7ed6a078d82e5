package adminuser

import "errors"

var (
	// ErrUserNotFound возвращается, когда сотрудник не найден
	ErrUserNotFound = errors.New("adminuser.repository: user not found")

	// ErrEmailTaken возвращается, когда e-mail уже занят
	ErrEmailTaken = errors.New("adminuser.repository: email already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("adminuser.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("adminuser.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("adminuser.repository: failed to scan row")
)
