package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EditorMode область сохранения в редакторе
type EditorMode string

const (
	// ModeWeek сохранение заменяет недельное правило дня недели
	ModeWeek EditorMode = "week"
	// ModeDate сохранение создает/заменяет переопределение одной даты
	ModeDate EditorMode = "date"
)

// ParseEditorMode парсит режим редактора
func ParseEditorMode(s string) (EditorMode, error) {
	switch mode := EditorMode(s); mode {
	case ModeWeek, ModeDate:
		return mode, nil
	default:
		return "", &ValidationError{Field: "mode", Message: fmt.Sprintf("unknown mode %q, expected week or date", s)}
	}
}

// EditorSession сессия редактирования рабочих часов выбранной даты
// Ranges - черновик, до сохранения хранилища не меняются
type EditorSession struct {
	ID        uuid.UUID
	Date      time.Time
	Weekday   Weekday
	Mode      EditorMode
	Ranges    []TimeRange
	UserID    int64
	OpenedAt  time.Time
	UpdatedAt time.Time
}
