package postgres

import (
	"github.com/teamtracker/teamtracker-api/internal/registry"
	"gorm.io/gorm"
)

type RegistryRepository struct {
	db *gorm.DB
}

func NewRegistryRepository(db *gorm.DB) registry.RepositoryAPI {
	return &RegistryRepository{db: db}
}

func (r *RegistryRepository) AllNoteTypes() ([]registry.NoteType, error) {
	var types []registry.NoteType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *RegistryRepository) AllLeaveTypes() ([]registry.LeaveType, error) {
	var types []registry.LeaveType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *RegistryRepository) AllThemes() ([]registry.Theme, error) {
	var themes []registry.Theme
	err := r.db.Order("name ASC").Find(&themes).Error
	return themes, err
}

func (r *RegistryRepository) NoteTypeExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&registry.NoteType{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *RegistryRepository) LeaveTypeExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&registry.LeaveType{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}
