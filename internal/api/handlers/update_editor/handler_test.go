package update_editor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/edit_availability"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type fakeUseCase struct {
	req *edit_availability.UpdateRequest
	err error
}

func (f *fakeUseCase) Update(_ context.Context, req *edit_availability.UpdateRequest) (*edit_availability.SessionResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &edit_availability.SessionResponse{Session: domain.EditorSession{ID: req.SessionID}}, nil
}

func patch(h *Handler, body string) *httptest.ResponseRecorder {
	viewID, sessionID := uuid.NewString(), uuid.NewString()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/calendar/views/"+viewID+"/editor/"+sessionID, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"viewId": viewID, "sessionId": sessionID})
	req = req.WithContext(middleware.WithUserID(req.Context(), 5))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestUpdateEditorPartialBody(t *testing.T) {
	t.Run("mode only", func(t *testing.T) {
		uc := &fakeUseCase{}
		rec := patch(NewHandler(uc, logger.NewNop()), `{"mode":"date"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, uc.req.Mode)
		assert.Equal(t, domain.ModeDate, *uc.req.Mode)
		assert.Nil(t, uc.req.Ranges)
	})

	t.Run("empty ranges close the date", func(t *testing.T) {
		uc := &fakeUseCase{}
		rec := patch(NewHandler(uc, logger.NewNop()), `{"ranges":[]}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, uc.req.Mode)
		require.NotNil(t, uc.req.Ranges)
		assert.Empty(t, *uc.req.Ranges)
	})
}

func TestUpdateEditorUnknownMode(t *testing.T) {
	uc := &fakeUseCase{err: &domain.ValidationError{Field: "mode", Message: "unknown mode"}}
	rec := patch(NewHandler(uc, logger.NewNop()), `{"mode":"month"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"mode"`)
}
