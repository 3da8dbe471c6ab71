package availabilityservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, 0, 1, 42, logger.NewNop())
}

func TestGetDateOverride(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/availability/overrides/2024-06-10":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(DateOverride{Date: "2024-06-10", Ranges: []TimeRange{}})
		case "/api/v1/availability/overrides/2024-06-11":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	ctx := context.Background()

	override, err := client.GetDateOverride(ctx, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, override)
	assert.True(t, override.IsClosed())

	override, err = client.GetDateOverride(ctx, time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, override)

	_, err = client.GetDateOverride(ctx, time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestReplaceWeeklyPattern(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/availability/weekly/MONDAY", r.URL.Path)
		assert.Equal(t, "42", r.Header.Get("X-User-ID"))

		var req RangesRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		_ = json.NewEncoder(w).Encode(WeeklyPatternResponse{Rules: []WeeklyRule{
			{Weekday: "MONDAY", Ranges: req.Ranges, Active: len(req.Ranges) > 0},
		}})
	})

	rules, err := client.ReplaceWeeklyPattern(context.Background(), domain.Monday,
		[]domain.TimeRange{domain.MustTimeRange("09:00", "17:00")})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, domain.Monday, rules[0].Weekday)
	assert.True(t, rules[0].Active)
	assert.Equal(t, []domain.TimeRange{domain.MustTimeRange("09:00", "17:00")}, rules[0].Ranges)
}

func TestSetDateOverrideErrors(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusNoContent)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		code := int(status.Load())
		w.WriteHeader(code)
		if code == http.StatusBadRequest {
			_ = json.NewEncoder(w).Encode(ErrorResponse{Message: "must be after startTime", Field: "ranges[0].endTime"})
		}
	})
	ctx := context.Background()
	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, client.SetDateOverride(ctx, date, nil))

	status.Store(http.StatusBadRequest)
	err := client.SetDateOverride(ctx, date, nil)
	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "ranges[0].endTime", vErr.Field)

	status.Store(http.StatusForbidden)
	assert.ErrorIs(t, client.SetDateOverride(ctx, date, nil), ErrRejected)

	status.Store(http.StatusBadGateway)
	assert.ErrorIs(t, client.SetDateOverride(ctx, date, nil), ErrUnavailable)
}

func TestInvalidWeekdayInResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(WeeklyPatternResponse{Rules: []WeeklyRule{{Weekday: "FUNDAY"}}})
	})

	_, err := client.GetWeeklyPattern(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestNotFoundOutsideOverrideLookup(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	ctx := context.Background()

	_, err := client.GetWeeklyPattern(ctx)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.NotErrorIs(t, err, errNotFound)

	_, err = client.ReplaceWeeklyPattern(ctx, domain.Monday, nil)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	err = client.SetDateOverride(ctx, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), nil)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
