package get_calendar_view

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/get_calendar"
)

const (
	msgInvalidViewID      = "некорректный ID представления"
	msgInvalidQuery       = "некорректные параметры month/months"
	msgInvalidData        = "некорректные параметры календаря"
	msgViewNotFound       = "представление календаря не найдено"
	msgForbidden          = "доступ запрещен"
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

// Handle GET /api/v1/calendar/views/{viewId}?month=YYYY-MM&months=N
// Переход по месяцам; кэш прогревается заново только при смене окна
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	viewID, err := uuid.Parse(mux.Vars(r)["viewId"])
	if err != nil {
		h.logger.Warn("GET /calendar/views/{viewId} - Invalid view ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidViewID)
		return
	}

	req, err := FromQuery(userID, viewID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /calendar/views/{viewId} - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, get_calendar.ErrInvalidInput):
			h.logger.Warn("GET /calendar/views/{viewId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
		case errors.Is(err, get_calendar.ErrViewNotFound):
			h.logger.Warn("GET /calendar/views/{viewId} - View not found: view=%s", viewID)
			handlers.RespondNotFound(w, msgViewNotFound)
		case errors.Is(err, get_calendar.ErrAccessDenied):
			h.logger.Warn("GET /calendar/views/{viewId} - Access denied: view=%s, user=%d", viewID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, get_calendar.ErrPatternUnavailable):
			h.logger.Error("GET /calendar/views/{viewId} - Pattern unavailable: view=%s, error=%v", viewID, err)
			handlers.RespondBadGateway(w, msgPatternUnavailable)
		default:
			h.logger.Error("GET /calendar/views/{viewId} - Failed to compose calendar: view=%s, error=%v", viewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromCalendarResponse(resp))
}
