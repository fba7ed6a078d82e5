package notifier

import "errors"

var (
	// ErrNoRecipient возвращается, когда адрес получателя не задан
	ErrNoRecipient = errors.New("notifier: recipient is empty")

	// ErrRejected возвращается, когда шлюз отклонил сообщение (4xx)
	ErrRejected = errors.New("notifier: message rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("notifier client: invalid response")
)
