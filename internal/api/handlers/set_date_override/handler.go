package set_date_override

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
	msgInvalidDate        = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgRangesRequired     = "поле ranges обязательно"
	msgInvalidData        = "некорректные данные переопределения"
)

type Handler struct {
	service OverrideService
	logger  Logger
}

func NewHandler(service OverrideService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/availability/overrides/{date}
// Создаёт или заменяет переопределение; пустой список означает "закрыто"
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	date, err := domain.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("PUT /availability/overrides/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req handlers.RangesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/overrides/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Ranges == nil {
		handlers.RespondBadRequest(w, msgRangesRequired)
		return
	}

	if err := h.service.SetDateOverride(r.Context(), date, handlers.ToDomainRanges(*req.Ranges)); err != nil {
		if vErr, ok := domain.AsValidationError(err); ok {
			h.logger.Warn("PUT /availability/overrides/{date} - Validation failed: date=%s, %v", domain.FormatDate(date), vErr)
			handlers.RespondValidationError(w, vErr)
			return
		}

		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /availability/overrides/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
		default:
			h.logger.Error("PUT /availability/overrides/{date} - Failed to set override: date=%s, error=%v",
				domain.FormatDate(date), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability/overrides/{date} - user=%d set %s with %d ranges",
		userID, domain.FormatDate(date), len(*req.Ranges))
	handlers.RespondNoContent(w)
}
