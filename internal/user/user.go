package user

import "time"

// Profile is the mirror row kept alongside the identity record. The id is the
// provider's user UUID; the row carries everything the clients can edit.
type Profile struct {
	ID        string                 `json:"id" gorm:"primaryKey"`
	Email     string                 `json:"email" gorm:"not null"`
	Name      string                 `json:"name"`
	Lastname  string                 `json:"lastname"`
	Avatar    string                 `json:"avatar"`
	Theme     string                 `json:"theme"`
	Extra     map[string]interface{} `json:"extra" gorm:"serializer:json"`
	CreatedAt time.Time              `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time              `json:"updated_at" gorm:"column:updated_at"`
}

func (Profile) TableName() string {
	return "users"
}

var patchableFields = []string{"name", "lastname", "avatar", "theme", "extra"}
