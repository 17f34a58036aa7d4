package employee

import (
	"time"

	"github.com/teamtracker/teamtracker-api/internal"
)

// Employee is a team member managed by one account. UserID is the owning
// account; every query carries it.
type Employee struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Surname   string    `json:"surname" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex:idx_employees_owner_email"`
	Color     string    `json:"color"`
	UserID    string    `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_employees_owner_email"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// CreateEmployeeDTO is the request payload for creating an employee.
type CreateEmployeeDTO struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Color   string `json:"color"`
}

func (dto CreateEmployeeDTO) Validate() *internal.AppError {
	if dto.Name == "" || dto.Surname == "" || dto.Email == "" {
		return internal.NewValidationError(
			"All fields (name, surname, email) are required",
			internal.ErrCodeMissingFields)
	}
	return nil
}

// patchableFields are the columns a partial update may touch.
var patchableFields = []string{"name", "surname", "email", "color"}
