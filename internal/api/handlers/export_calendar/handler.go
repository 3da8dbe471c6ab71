package export_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	exportCalendar "github.com/m04kA/SMC-ScheduleService/internal/usecase/export_calendar"
)

const (
	msgInvalidPeriod      = "некорректный период, ожидаются from и to в формате YYYY-MM-DD"
	msgPatternUnavailable = "не удалось загрузить недельное расписание"
)

const contentTypeCalendar = "text/calendar; charset=utf-8"

type Handler struct {
	useCase ExportUseCase
	logger  Logger
}

func NewHandler(useCase ExportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar/export.ics?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := domain.ParseDate(query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /calendar/export.ics - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := domain.ParseDate(query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /calendar/export.ics - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &exportCalendar.Request{From: from, To: to})
	if err != nil {
		switch {
		case errors.Is(err, exportCalendar.ErrInvalidInput):
			h.logger.Warn("GET /calendar/export.ics - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
		case errors.Is(err, exportCalendar.ErrPatternUnavailable):
			h.logger.Error("GET /calendar/export.ics - Pattern unavailable: %v", err)
			handlers.RespondBadGateway(w, msgPatternUnavailable)
		default:
			h.logger.Error("GET /calendar/export.ics - Failed to export: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", contentTypeCalendar)
	w.Header().Set("Content-Disposition", `attachment; filename="availability.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(resp.Body))
}
