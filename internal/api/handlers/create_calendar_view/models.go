package create_calendar_view

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/get_calendar"
)

// CreateViewRequest тело запроса
// Month в формате YYYY-MM; пусто - текущий месяц
type CreateViewRequest struct {
	Month  string `json:"month,omitempty"`
	Months int    `json:"months,omitempty"`
}

// ToUseCaseRequest конвертирует запрос в модель usecase
func (r CreateViewRequest) ToUseCaseRequest(userID int64) (*get_calendar.Request, error) {
	req := &get_calendar.Request{UserID: userID, Months: r.Months}
	if r.Month != "" {
		month, err := domain.ParseMonth(r.Month)
		if err != nil {
			return nil, err
		}
		req.Month = month
	}
	return req, nil
}
