package save_editor

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
	msgInvalidID       = "некорректный ID представления или сессии"
	msgInvalidData     = "некорректные данные сессии"
	msgViewNotFound    = "представление календаря не найдено"
	msgSessionNotFound = "сессия редактора не найдена"
	msgForbidden       = "доступ запрещен"
	msgSaveFailed      = "не удалось сохранить рабочие часы, повторите попытку"
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

// Handle POST /api/v1/calendar/views/{viewId}/editor/{sessionId}/save
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	vars := mux.Vars(r)
	viewID, err := uuid.Parse(vars["viewId"])
	if err != nil {
		h.logger.Warn("POST /calendar/views/{viewId}/editor/{sessionId}/save - Invalid view ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	sessionID, err := uuid.Parse(vars["sessionId"])
	if err != nil {
		h.logger.Warn("POST /calendar/views/{viewId}/editor/{sessionId}/save - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	resp, err := h.useCase.Save(r.Context(), &edit_availability.SessionRequest{
		UserID:    userID,
		ViewID:    viewID,
		SessionID: sessionID,
	})
	if err != nil {
		if vErr, ok := domain.AsValidationError(err); ok {
			h.logger.Warn("POST /calendar/views/{viewId}/editor/{sessionId}/save - Validation failed: session=%s, %v",
				sessionID, vErr)
			handlers.RespondValidationError(w, vErr)
			return
		}

		switch {
		case errors.Is(err, edit_availability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidData)
		case errors.Is(err, edit_availability.ErrViewNotFound):
			handlers.RespondNotFound(w, msgViewNotFound)
		case errors.Is(err, edit_availability.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)
		case errors.Is(err, edit_availability.ErrAccessDenied):
			h.logger.Warn("POST /calendar/views/{viewId}/editor/{sessionId}/save - Access denied: view=%s, user=%d",
				viewID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, edit_availability.ErrSaveFailed):
			h.logger.Error("POST /calendar/views/{viewId}/editor/{sessionId}/save - Backend write failed: session=%s, error=%v",
				sessionID, err)
			handlers.RespondBadGateway(w, msgSaveFailed)
		default:
			h.logger.Error("POST /calendar/views/{viewId}/editor/{sessionId}/save - Failed to save: session=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
