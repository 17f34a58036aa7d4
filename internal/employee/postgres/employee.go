package postgres

import (
	"errors"
	"time"

	"github.com/teamtracker/teamtracker-api/internal"
	"github.com/teamtracker/teamtracker-api/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements employee.Repository using GORM. The tenant
// predicate (user_id) is applied on every query.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(emp *employee.Employee) error {
	if err := r.db.Create(emp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.NewConflictError("Email already exists", internal.ErrCodeDuplicateEmail)
		}
		return err
	}
	return nil
}

func (r *EmployeeRepository) GetAll(userID string) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.db.Where("user_id = ?", userID).
		Order("surname ASC, name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(id int64, userID string) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// Update patches the row scoped by id and owner. Zero affected rows means
// the row does not exist for this tenant; another tenant's row is
// indistinguishable from absence.
func (r *EmployeeRepository) Update(id int64, userID string, updates map[string]interface{}) (*employee.Employee, error) {
	updates["updated_at"] = time.Now()

	res := r.db.Model(&employee.Employee{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, internal.NewConflictError("Email already exists", internal.ErrCodeDuplicateEmail)
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrEmployeeNotFound
	}

	return r.GetByID(id, userID)
}

func (r *EmployeeRepository) Delete(id int64, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&employee.Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) SearchByName(userID, name string) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	pattern := "%" + name + "%"
	err := r.db.Where("user_id = ?", userID).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(surname) LIKE LOWER(?)", pattern, pattern).
		Order("surname ASC, name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) UsedColors(userID string) ([]string, error) {
	var colors []string
	err := r.db.Model(&employee.Employee{}).
		Where("user_id = ? AND color <> ''", userID).
		Distinct().
		Pluck("color", &colors).Error
	return colors, err
}

func (r *EmployeeRepository) EmailExists(userID, email string) (bool, error) {
	var count int64
	err := r.db.Model(&employee.Employee{}).
		Where("user_id = ? AND email = ?", userID, email).
		Count(&count).Error
	return count > 0, err
}
