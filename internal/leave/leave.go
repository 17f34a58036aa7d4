package leave

import (
	"time"

	"github.com/teamtracker/teamtracker-api/internal"
)

// Leave is an absence period for an employee. Dates travel as ISO date
// strings (YYYY-MM-DD) exactly as the clients send them.
type Leave struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	EmployeeID int64     `json:"employee_id" gorm:"column:employee_id;not null"`
	Type       string    `json:"type" gorm:"not null"`
	StartDate  string    `json:"start_date" gorm:"column:start_date;type:date;not null"`
	EndDate    string    `json:"end_date" gorm:"column:end_date;type:date;not null"`
	Note       string    `json:"note"`
	UserID     string    `json:"user_id" gorm:"column:user_id;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Leave) TableName() string {
	return "leaves"
}

type CreateLeaveDTO struct {
	EmployeeID int64  `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Note       string `json:"note"`
}

func (dto CreateLeaveDTO) Validate() *internal.AppError {
	if dto.EmployeeID == 0 || dto.Type == "" || dto.StartDate == "" || dto.EndDate == "" {
		return internal.NewValidationError(
			"Fields 'start_date', 'end_date', 'employee_id' and 'type' are required",
			internal.ErrCodeMissingFields)
	}
	return nil
}

var patchableFields = []string{"employee_id", "type", "start_date", "end_date", "note"}
