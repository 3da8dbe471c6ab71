package open_editor

// OpenEditorRequest тело запроса открытия редактора
type OpenEditorRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}
