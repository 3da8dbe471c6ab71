package export_calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exportCalendar "github.com/m04kA/SMC-ScheduleService/internal/usecase/export_calendar"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type fakeUseCase struct {
	req *exportCalendar.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *exportCalendar.Request) (*exportCalendar.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &exportCalendar.Response{Body: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"}, nil
}

func TestExportCalendar(t *testing.T) {
	uc := &fakeUseCase{}
	rec := httptest.NewRecorder()
	h := NewHandler(uc, logger.NewNop())

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar/export.ics?from=2024-06-01&to=2024-06-30", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeCalendar, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), uc.req.From)
	assert.Equal(t, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), uc.req.To)
}

func TestExportCalendarErrors(t *testing.T) {
	cases := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{name: "missing from", query: "?to=2024-06-30", status: http.StatusBadRequest},
		{name: "bad to", query: "?from=2024-06-01&to=tomorrow", status: http.StatusBadRequest},
		{name: "too long", query: "?from=2024-06-01&to=2026-06-01", err: exportCalendar.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "pattern", query: "?from=2024-06-01&to=2024-06-30", err: exportCalendar.ErrPatternUnavailable, status: http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeUseCase{err: tc.err}, logger.NewNop()).
				Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar/export.ics"+tc.query, nil))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
