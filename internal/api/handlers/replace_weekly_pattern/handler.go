package replace_weekly_pattern

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
)

const (
	msgInvalidWeekday     = "некорректный день недели"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgRangesRequired     = "поле ranges обязательно"
	msgInvalidData        = "некорректные данные расписания"
)

type Handler struct {
	service PatternService
	logger  Logger
}

func NewHandler(service PatternService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/availability/weekly/{weekday}
// Полная замена интервалов дня недели; пустой список закрывает день
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	weekday, err := domain.ParseWeekday(mux.Vars(r)["weekday"])
	if err != nil {
		h.logger.Warn("PUT /availability/weekly/{weekday} - Invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	var req handlers.RangesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/weekly/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Ranges == nil {
		handlers.RespondBadRequest(w, msgRangesRequired)
		return
	}

	rules, err := h.service.ReplaceWeeklyPattern(r.Context(), weekday, handlers.ToDomainRanges(*req.Ranges))
	if err != nil {
		if vErr, ok := domain.AsValidationError(err); ok {
			h.logger.Warn("PUT /availability/weekly/{weekday} - Validation failed: weekday=%s, %v", weekday, vErr)
			handlers.RespondValidationError(w, vErr)
			return
		}

		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /availability/weekly/{weekday} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
		default:
			h.logger.Error("PUT /availability/weekly/{weekday} - Failed to replace: weekday=%s, error=%v", weekday, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability/weekly/{weekday} - user=%d replaced %s with %d ranges",
		userID, weekday, len(*req.Ranges))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainRules(rules))
}
