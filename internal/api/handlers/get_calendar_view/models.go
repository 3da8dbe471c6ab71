package get_calendar_view

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/get_calendar"
)

// FromQuery собирает запрос usecase из пути и query параметров month, months
func FromQuery(userID int64, viewID uuid.UUID, query url.Values) (*get_calendar.Request, error) {
	req := &get_calendar.Request{UserID: userID, ViewID: &viewID}

	if s := query.Get("month"); s != "" {
		month, err := domain.ParseMonth(s)
		if err != nil {
			return nil, err
		}
		req.Month = month
	}

	if s := query.Get("months"); s != "" {
		months, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		req.Months = months
	}

	return req, nil
}
