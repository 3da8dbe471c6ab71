package update_editor

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
	msgInvalidID          = "некорректный ID представления или сессии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgViewNotFound       = "представление календаря не найдено"
	msgSessionNotFound    = "сессия редактора не найдена"
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

// Handle PATCH /api/v1/calendar/views/{viewId}/editor/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	vars := mux.Vars(r)
	viewID, err := uuid.Parse(vars["viewId"])
	if err != nil {
		h.logger.Warn("PATCH /calendar/views/{viewId}/editor/{sessionId} - Invalid view ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	sessionID, err := uuid.Parse(vars["sessionId"])
	if err != nil {
		h.logger.Warn("PATCH /calendar/views/{viewId}/editor/{sessionId} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var body UpdateEditorRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PATCH /calendar/views/{viewId}/editor/{sessionId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Update(r.Context(), body.ToUseCaseRequest(edit_availability.UpdateRequest{
		UserID:    userID,
		ViewID:    viewID,
		SessionID: sessionID,
	}))
	if err != nil {
		if vErr, ok := domain.AsValidationError(err); ok {
			handlers.RespondValidationError(w, vErr)
			return
		}

		switch {
		case errors.Is(err, edit_availability.ErrViewNotFound):
			handlers.RespondNotFound(w, msgViewNotFound)
		case errors.Is(err, edit_availability.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)
		case errors.Is(err, edit_availability.ErrAccessDenied):
			h.logger.Warn("PATCH /calendar/views/{viewId}/editor/{sessionId} - Access denied: view=%s, user=%d", viewID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("PATCH /calendar/views/{viewId}/editor/{sessionId} - Failed to update session: session=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainSession(resp.Session, resp.Resolution))
}
