package export_calendar

import (
	"context"

	exportCalendar "github.com/m04kA/SMC-ScheduleService/internal/usecase/export_calendar"
)

type ExportUseCase interface {
	Execute(ctx context.Context, req *exportCalendar.Request) (*exportCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
