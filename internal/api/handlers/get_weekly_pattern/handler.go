package get_weekly_pattern

import (
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
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

// Handle GET /api/v1/availability/weekly
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.GetWeeklyPattern(r.Context())
	if err != nil {
		h.logger.Error("GET /availability/weekly - Failed to get weekly pattern: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainRules(rules))
}
