package postgres

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/teamtracker/teamtracker-api/internal"
	"github.com/teamtracker/teamtracker-api/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository. It also satisfies
// auth.ProfileMirror so registration can seed the mirror row without the auth
// package importing this one.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(p *user.Profile) error {
	return r.db.Create(p).Error
}

func (r *UserRepository) GetByID(id string) (*user.Profile, error) {
	var p user.Profile
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *UserRepository) Update(id string, updates map[string]interface{}) (*user.Profile, error) {
	// Map-based updates bypass the model's json serializer, so the extra
	// payload has to be encoded here before it reaches the driver.
	if extra, ok := updates["extra"]; ok && extra != nil {
		raw, err := json.Marshal(extra)
		if err != nil {
			return nil, internal.NewInternalError("Failed to update user profile", err)
		}
		updates["extra"] = string(raw)
	}
	updates["updated_at"] = time.Now()

	res := r.db.Model(&user.Profile{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrUserNotFound
	}

	return r.GetByID(id)
}

func (r *UserRepository) UpdateEmail(id, email string) error {
	res := r.db.Model(&user.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"email": email, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&user.Profile{}).Error
}

// CreateProfile seeds the mirror row for a freshly registered identity.
func (r *UserRepository) CreateProfile(userID, email string) error {
	return r.Create(&user.Profile{ID: userID, Email: email})
}
