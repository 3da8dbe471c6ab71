package get_calendar_view

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/get_calendar"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type fakeUseCase struct {
	req  *get_calendar.Request
	resp *get_calendar.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *get_calendar.Request) (*get_calendar.Response, error) {
	f.req = req
	return f.resp, f.err
}

func request(h *Handler, viewID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar/views/"+viewID+query, nil)
	req = mux.SetURLVars(req, map[string]string{"viewId": viewID})
	req = req.WithContext(middleware.WithUserID(req.Context(), 3))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestGetCalendarView(t *testing.T) {
	viewID := uuid.New()
	june := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	cells := make([]domain.CalendarCell, domain.GridCells)
	for i := range cells {
		cells[i] = domain.CalendarCell{Date: time.Date(2024, time.May, 27+i, 0, 0, 0, 0, time.UTC)}
	}

	uc := &fakeUseCase{resp: &get_calendar.Response{
		ViewID: viewID,
		Window: domain.DateWindow{From: cells[0].Date, To: cells[len(cells)-1].Date},
		Today:  time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC),
		Warmed: true,
		Grids:  []get_calendar.MonthGrid{{Month: june, Cells: cells}},
	}}

	rec := request(NewHandler(uc, logger.NewNop()), viewID.String(), "?month=2024-06&months=1")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.req.ViewID)
	assert.Equal(t, viewID, *uc.req.ViewID)
	assert.Equal(t, june, uc.req.Month)
	assert.Equal(t, 1, uc.req.Months)
	assert.Equal(t, int64(3), uc.req.UserID)

	var resp handlers.CalendarViewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-05-27", resp.Window.From)
	assert.Equal(t, "2024-07-07", resp.Window.To)
	require.Len(t, resp.Grids, 1)
	assert.Equal(t, "2024-06", resp.Grids[0].Month)
	assert.Len(t, resp.Grids[0].Cells, domain.GridCells)
}

func TestGetCalendarViewErrors(t *testing.T) {
	cases := []struct {
		name   string
		viewID string
		query  string
		err    error
		status int
	}{
		{name: "bad view id", viewID: "nope", status: http.StatusBadRequest},
		{name: "bad month", viewID: uuid.NewString(), query: "?month=June", status: http.StatusBadRequest},
		{name: "bad months", viewID: uuid.NewString(), query: "?months=many", status: http.StatusBadRequest},
		{name: "invalid input", viewID: uuid.NewString(), err: get_calendar.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "evicted", viewID: uuid.NewString(), err: get_calendar.ErrViewNotFound, status: http.StatusNotFound},
		{name: "foreign", viewID: uuid.NewString(), err: get_calendar.ErrAccessDenied, status: http.StatusForbidden},
		{name: "pattern", viewID: uuid.NewString(), err: get_calendar.ErrPatternUnavailable, status: http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := request(NewHandler(&fakeUseCase{err: tc.err}, logger.NewNop()), tc.viewID, tc.query)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
