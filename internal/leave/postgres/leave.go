package postgres

import (
	"errors"
	"time"

	"github.com/teamtracker/teamtracker-api/internal"
	"github.com/teamtracker/teamtracker-api/internal/leave"
	"gorm.io/gorm"
)

type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.Repository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(lv *leave.Leave) error {
	return r.db.Create(lv).Error
}

func (r *LeaveRepository) GetAll(userID string) ([]*leave.Leave, error) {
	var leaves []*leave.Leave
	err := r.db.Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *LeaveRepository) GetByID(id int64, userID string) (*leave.Leave, error) {
	var lv leave.Leave
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&lv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrLeaveNotFound
		}
		return nil, err
	}
	return &lv, nil
}

func (r *LeaveRepository) Update(id int64, userID string, updates map[string]interface{}) (*leave.Leave, error) {
	updates["updated_at"] = time.Now()

	res := r.db.Model(&leave.Leave{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrLeaveNotFound
	}

	return r.GetByID(id, userID)
}

func (r *LeaveRepository) Delete(id int64, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&leave.Leave{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrLeaveNotFound
	}
	return nil
}
