package get_date_override

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

const (
	msgInvalidDate = "некорректная дата, ожидается YYYY-MM-DD"
	msgNotFound    = "переопределение для даты не найдено"
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

// Handle GET /api/v1/availability/overrides/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("GET /availability/overrides/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	override, err := h.service.GetDateOverride(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /availability/overrides/{date} - Failed to get override: date=%s, error=%v",
			domain.FormatDate(date), err)
		handlers.RespondInternalError(w)
		return
	}
	if override == nil {
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.DateOverrideResponse{
		Date:   domain.FormatDate(override.Date),
		Ranges: handlers.FromDomainRanges(override.Ranges),
	})
}
