package open_editor

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/edit_availability"
)

const (
	msgInvalidViewID      = "некорректный ID представления"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная дата, ожидается YYYY-MM-DD"
	msgViewNotFound       = "представление календаря не найдено"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase EditorUseCase
	logger  Logger
}

func NewHandler(useCase EditorUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/calendar/views/{viewId}/editor
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	viewID, err := uuid.Parse(mux.Vars(r)["viewId"])
	if err != nil {
		h.logger.Warn("POST /calendar/views/{viewId}/editor - Invalid view ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidViewID)
		return
	}

	var body OpenEditorRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /calendar/views/{viewId}/editor - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := domain.ParseDate(body.Date)
	if err != nil {
		h.logger.Warn("POST /calendar/views/{viewId}/editor - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.useCase.Open(r.Context(), &edit_availability.OpenRequest{
		UserID: userID,
		ViewID: viewID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, edit_availability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, edit_availability.ErrViewNotFound):
			h.logger.Warn("POST /calendar/views/{viewId}/editor - View not found: view=%s", viewID)
			handlers.RespondNotFound(w, msgViewNotFound)
		case errors.Is(err, edit_availability.ErrAccessDenied):
			h.logger.Warn("POST /calendar/views/{viewId}/editor - Access denied: view=%s, user=%d", viewID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("POST /calendar/views/{viewId}/editor - Failed to open editor: view=%s, error=%v", viewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainSession(resp.Session, resp.Resolution))
}
