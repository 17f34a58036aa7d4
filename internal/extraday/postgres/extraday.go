package postgres

import (
	"errors"
	"time"

	"github.com/teamtracker/teamtracker-api/internal"
	"github.com/teamtracker/teamtracker-api/internal/extraday"
	"gorm.io/gorm"
)

type ExtraDayRepository struct {
	db *gorm.DB
}

func NewExtraDayRepository(db *gorm.DB) extraday.Repository {
	return &ExtraDayRepository{db: db}
}

// extraDayRow is the flattened join row scanned from the store before the
// employee columns are folded into the nested response shape.
type extraDayRow struct {
	extraday.ExtraDay
	EmployeeName    *string `gorm:"column:employee_name"`
	EmployeeSurname *string `gorm:"column:employee_surname"`
}

func (row *extraDayRow) toJoined() *extraday.ExtraDayWithEmployee {
	joined := &extraday.ExtraDayWithEmployee{ExtraDay: row.ExtraDay}
	if row.EmployeeName != nil {
		joined.Employees = &extraday.EmployeeName{
			Name:    *row.EmployeeName,
			Surname: *row.EmployeeSurname,
		}
	}
	return joined
}

func (r *ExtraDayRepository) Create(ed *extraday.ExtraDay) (*extraday.ExtraDayWithEmployee, error) {
	if err := r.db.Create(ed).Error; err != nil {
		return nil, err
	}

	var row extraDayRow
	err := r.db.Table("extra_days").
		Select("extra_days.*, employees.name AS employee_name, employees.surname AS employee_surname").
		Joins("LEFT JOIN employees ON employees.id = extra_days.employee_id").
		Where("extra_days.id = ?", ed.ID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return row.toJoined(), nil
}

func (r *ExtraDayRepository) GetAll(userID string) ([]*extraday.ExtraDayWithEmployee, error) {
	var rows []*extraDayRow
	err := r.db.Table("extra_days").
		Select("extra_days.*, employees.name AS employee_name, employees.surname AS employee_surname").
		Joins("LEFT JOIN employees ON employees.id = extra_days.employee_id").
		Where("extra_days.user_id = ?", userID).
		Order("extra_days.date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	days := make([]*extraday.ExtraDayWithEmployee, 0, len(rows))
	for _, row := range rows {
		days = append(days, row.toJoined())
	}
	return days, nil
}

func (r *ExtraDayRepository) GetByEmployee(employeeID int64, userID string) ([]*extraday.ExtraDay, error) {
	var days []*extraday.ExtraDay
	err := r.db.Where("employee_id = ? AND user_id = ?", employeeID, userID).
		Order("date DESC").
		Find(&days).Error
	return days, err
}

func (r *ExtraDayRepository) Update(id int64, userID string, updates map[string]interface{}) (*extraday.ExtraDay, error) {
	updates["updated_at"] = time.Now()

	res := r.db.Model(&extraday.ExtraDay{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrExtraDayNotFound
	}

	var ed extraday.ExtraDay
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&ed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrExtraDayNotFound
		}
		return nil, err
	}
	return &ed, nil
}

func (r *ExtraDayRepository) Delete(id int64, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&extraday.ExtraDay{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrExtraDayNotFound
	}
	return nil
}
