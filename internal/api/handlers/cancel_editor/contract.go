package cancel_editor

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/usecase/edit_availability"
)

type EditorUseCase interface {
	Cancel(ctx context.Context, req *edit_availability.SessionRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
