package edit_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// OpenRequest открытие редактора для даты
type OpenRequest struct {
	UserID int64
	ViewID uuid.UUID
	Date   time.Time
}

// UpdateRequest изменение черновика
// nil поля не меняются
type UpdateRequest struct {
	UserID    int64
	ViewID    uuid.UUID
	SessionID uuid.UUID
	Mode      *domain.EditorMode
	Ranges    *[]domain.TimeRange
}

// SessionRequest запрос к открытой сессии (сохранение, отмена)
type SessionRequest struct {
	UserID    int64
	ViewID    uuid.UUID
	SessionID uuid.UUID
}

// SessionResponse состояние сессии редактора
type SessionResponse struct {
	Session    domain.EditorSession
	Resolution domain.Resolution // Текущие рабочие часы даты до сохранения
}

// SaveResponse результат сохранения
type SaveResponse struct {
	Date       time.Time
	Mode       domain.EditorMode
	Resolution domain.Resolution // Рабочие часы даты после сохранения
	Rules      []domain.WeeklyRule
}
