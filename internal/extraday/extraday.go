package extraday

import (
	"time"

	"github.com/teamtracker/teamtracker-api/internal"
)

// ExtraDay records extra hours worked by an employee on a given date.
type ExtraDay struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	EmployeeID int64     `json:"employee_id" gorm:"column:employee_id;not null"`
	ExtraHours float64   `json:"extra_hours" gorm:"column:extra_hours;not null"`
	Reason     string    `json:"reason"`
	Date       string    `json:"date" gorm:"type:date;not null"`
	UserID     string    `json:"user_id" gorm:"column:user_id;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (ExtraDay) TableName() string {
	return "extra_days"
}

// EmployeeName is the slice of the employee row embedded in list responses.
type EmployeeName struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// ExtraDayWithEmployee is an extra-days record joined with the owning
// employee's name for display.
type ExtraDayWithEmployee struct {
	ExtraDay
	Employees *EmployeeName `json:"employees"`
}

type CreateExtraDayDTO struct {
	EmployeeID int64    `json:"employee_id"`
	ExtraHours *float64 `json:"extra_hours"`
	Reason     string   `json:"reason"`
	Date       string   `json:"date"`
}

func (dto CreateExtraDayDTO) Validate() *internal.AppError {
	if dto.EmployeeID == 0 || dto.ExtraHours == nil {
		return internal.NewValidationError(
			"employee_id and days are required",
			internal.ErrCodeMissingFields)
	}
	return nil
}

var patchableFields = []string{"employee_id", "extra_hours", "reason", "date"}
