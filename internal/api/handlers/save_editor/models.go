package save_editor

import (
	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/edit_availability"
)

// SaveEditorResponse результат сохранения
// Rules заполняется только при сохранении дня недели
type SaveEditorResponse struct {
	Date       string                `json:"date"`
	Mode       string                `json:"mode"`
	Resolution handlers.Resolution   `json:"resolution"`
	Rules      []handlers.WeeklyRule `json:"rules,omitempty"`
}

// FromUseCaseResponse конвертирует ответ usecase
func FromUseCaseResponse(resp *edit_availability.SaveResponse) SaveEditorResponse {
	out := SaveEditorResponse{
		Date:       domain.FormatDate(resp.Date),
		Mode:       string(resp.Mode),
		Resolution: handlers.FromDomainResolution(resp.Resolution),
	}
	if resp.Rules != nil {
		out.Rules = handlers.FromDomainRules(resp.Rules).Rules
	}
	return out
}
