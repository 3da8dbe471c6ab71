package update_editor

import (
	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/edit_availability"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

// UpdateEditorRequest тело запроса; отсутствующие поля не меняются
type UpdateEditorRequest struct {
	Mode   *string               `json:"mode,omitempty"`
	Ranges *[]handlers.TimeRange `json:"ranges,omitempty"`
}

// ToUseCaseRequest конвертирует запрос в модель usecase
func (r UpdateEditorRequest) ToUseCaseRequest(base edit_availability.UpdateRequest) *edit_availability.UpdateRequest {
	req := base
	if r.Mode != nil {
		req.Mode = ptr.Ptr(domain.EditorMode(*r.Mode))
	}
	if r.Ranges != nil {
		req.Ranges = ptr.Ptr(handlers.ToDomainRanges(*r.Ranges))
	}
	return &req
}
