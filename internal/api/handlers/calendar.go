package handlers

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/get_calendar"
)

// DateWindow видимое окно календаря
type DateWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MonthGrid сетка одного месяца
type MonthGrid struct {
	Month string         `json:"month"`
	Cells []CalendarCell `json:"cells"`
}

// CalendarViewResponse открытое представление календаря
type CalendarViewResponse struct {
	ViewID string      `json:"viewId"`
	Window DateWindow  `json:"window"`
	Today  string      `json:"today"`
	Warmed bool        `json:"warmed"`
	Grids  []MonthGrid `json:"grids"`
}

// FromCalendarResponse конвертирует результат get_calendar в ответ API
func FromCalendarResponse(resp *get_calendar.Response) CalendarViewResponse {
	out := CalendarViewResponse{
		ViewID: resp.ViewID.String(),
		Window: DateWindow{
			From: domain.FormatDate(resp.Window.From),
			To:   domain.FormatDate(resp.Window.To),
		},
		Today:  domain.FormatDate(resp.Today),
		Warmed: resp.Warmed,
		Grids:  make([]MonthGrid, 0, len(resp.Grids)),
	}
	for _, g := range resp.Grids {
		out.Grids = append(out.Grids, MonthGrid{
			Month: g.Month.Format(domain.MonthFormat),
			Cells: FromDomainCells(g.Cells),
		})
	}
	return out
}
