// Package registry serves the read-only reference tables: note types, leave
// types and UI themes. Registries are global, not user-scoped.
package registry

type NoteType struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (NoteType) TableName() string {
	return "note_types"
}

type LeaveType struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}

type Theme struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (Theme) TableName() string {
	return "themes"
}

type RepositoryAPI interface {
	AllNoteTypes() ([]NoteType, error)
	AllLeaveTypes() ([]LeaveType, error)
	AllThemes() ([]Theme, error)
	NoteTypeExists(name string) (bool, error)
	LeaveTypeExists(name string) (bool, error)
}
