package schedule

import "errors"

var (
	// ErrOverrideNotFound возвращается, когда для даты нет переопределения
	ErrOverrideNotFound = errors.New("schedule.repository: date override not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrUnknownWeekday возвращается, если в таблице встретился неизвестный день недели
	ErrUnknownWeekday = errors.New("schedule.repository: unknown weekday in storage")
)
