package availabilityservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("availabilityservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("availabilityservice client: invalid response")

	// ErrUnavailable возвращается, когда сервис не ответил или ответил 5xx
	ErrUnavailable = errors.New("availabilityservice client: service unavailable")

	// ErrRejected возвращается, когда сервис отклонил запись (400 без поля или 401/403)
	ErrRejected = errors.New("availabilityservice client: request rejected")
)
