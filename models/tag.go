package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag belongs to exactly one note space; its name is unique within it.
type Tag struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NotespaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tags_space_name" json:"notespace_id"`
	Name        string    `gorm:"not null;uniqueIndex:idx_tags_space_name" json:"name"`
	Extras      JSONMap   `gorm:"type:jsonb" json:"extras,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Tag) SpaceID() uuid.UUID {
	return t.NotespaceID
}
