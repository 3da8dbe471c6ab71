package create_calendar_view

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/get_calendar"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMonth       = "некорректный месяц, ожидается YYYY-MM"
	msgInvalidData        = "некорректные параметры календаря"
	msgPatternUnavailable = "не удалось загрузить недельное расписание"
)

type Handler struct {
	useCase CalendarUseCase
	logger  Logger
}

func NewHandler(useCase CalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/calendar/views
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var body CreateViewRequest
	// Тело необязательно
	if err := handlers.DecodeJSON(r, &body); err != nil && !errors.Is(err, handlers.ErrEmptyBody) && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /calendar/views - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req, err := body.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /calendar/views - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, get_calendar.ErrInvalidInput):
			h.logger.Warn("POST /calendar/views - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
		case errors.Is(err, get_calendar.ErrPatternUnavailable):
			h.logger.Error("POST /calendar/views - Pattern unavailable: user=%d, error=%v", userID, err)
			handlers.RespondBadGateway(w, msgPatternUnavailable)
		default:
			h.logger.Error("POST /calendar/views - Failed to open view: user=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, handlers.FromCalendarResponse(resp))
}
