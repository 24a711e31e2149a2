package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NotespaceID uuid.UUID `gorm:"type:uuid;not null;index" json:"notespace_id"`
	Title       string    `json:"title"`
	Content     JSONMap   `gorm:"type:jsonb;not null" json:"content"`

	// Incremented when the note's contents change (title and content).
	// May be used by clients to detect conflicts.
	Revision int `gorm:"not null;default:1" json:"revision"`

	IsArchived bool `gorm:"not null;default:false" json:"is_archived"`
	IsPinned   bool `gorm:"not null;default:false" json:"is_pinned"`
	IsDeleted  bool `gorm:"not null;default:false" json:"is_deleted"` // in the trash, not deleted permanently

	Tags      []Tag     `gorm:"many2many:note_tags" json:"tags"`
	Extras    JSONMap   `gorm:"type:jsonb" json:"extras,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (n *Note) SpaceID() uuid.UUID {
	return n.NotespaceID
}

func (n *Note) FromJSON(data []byte) error {
	return json.Unmarshal(data, n)
}

func (n *Note) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}
