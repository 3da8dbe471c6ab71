package update_editor

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/usecase/edit_availability"
)

type EditorUseCase interface {
	Update(ctx context.Context, req *edit_availability.UpdateRequest) (*edit_availability.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
