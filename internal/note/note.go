package note

import (
	"time"

	"github.com/teamtracker/teamtracker-api/internal"
)

// Note is a dated annotation, optionally attached to an employee.
type Note struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Date       string    `json:"date" gorm:"type:date;not null"`
	Content    string    `json:"content" gorm:"not null"`
	EmployeeID *int64    `json:"employee_id" gorm:"column:employee_id"`
	Type       string    `json:"type" gorm:"not null"`
	Title      string    `json:"title"`
	UserID     string    `json:"user_id" gorm:"column:user_id;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Note) TableName() string {
	return "notes"
}

type CreateNoteDTO struct {
	Date       string `json:"date"`
	Content    string `json:"content"`
	EmployeeID *int64 `json:"employee_id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
}

func (dto CreateNoteDTO) Validate() *internal.AppError {
	if dto.Date == "" || dto.Content == "" || dto.Type == "" {
		return internal.NewValidationError(
			"Fields 'date', 'content' and 'type' are required",
			internal.ErrCodeMissingFields)
	}
	return nil
}

var patchableFields = []string{"date", "content", "employee_id", "type", "title"}
