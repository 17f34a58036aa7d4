package postgres

import (
	"errors"
	"time"

	"github.com/teamtracker/teamtracker-api/internal"
	"github.com/teamtracker/teamtracker-api/internal/note"
	"gorm.io/gorm"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) note.Repository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(n *note.Note) error {
	return r.db.Create(n).Error
}

func (r *NoteRepository) GetAll(userID string) ([]*note.Note, error) {
	var notes []*note.Note
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&notes).Error
	return notes, err
}

func (r *NoteRepository) GetByID(id int64, userID string) (*note.Note, error) {
	var n note.Note
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrNoteNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NoteRepository) Update(id int64, userID string, updates map[string]interface{}) (*note.Note, error) {
	updates["updated_at"] = time.Now()

	res := r.db.Model(&note.Note{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrNoteNotFound
	}

	return r.GetByID(id, userID)
}

func (r *NoteRepository) Delete(id int64, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&note.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrNoteNotFound
	}
	return nil
}
