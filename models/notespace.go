package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SpaceType represents the kind of note space (personal or team)
type SpaceType string

const (
	PersonalSpace SpaceType = "personal"
	TeamSpace     SpaceType = "team"
)

// SpaceScoped is implemented by every model that belongs to a note
// space. The membership resolver accepts any of them and resolves the
// owning space.
type SpaceScoped interface {
	SpaceID() uuid.UUID
}

// NoteSpace is the tenant root owning members, tags and notes.
type NoteSpace struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Type      SpaceType `gorm:"type:varchar(20);not null;default:'personal';index" json:"type"`
	Name      string    `gorm:"not null" json:"name"`
	Extras    JSONMap   `gorm:"type:jsonb" json:"extras,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *NoteSpace) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SpaceID lets a NoteSpace act as its own scope target.
func (s *NoteSpace) SpaceID() uuid.UUID {
	return s.ID
}
