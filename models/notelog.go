package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogAction is the closed set of actions recorded against a note.
type LogAction string

const (
	ActionCreated    LogAction = "created"
	ActionUpdated    LogAction = "updated"
	ActionDeleted    LogAction = "deleted"  // moved to trash
	ActionRestored   LogAction = "restored" // restored from trash
	ActionArchived   LogAction = "archived"
	ActionUnarchived LogAction = "unarchived"
	ActionTagged     LogAction = "tagged"
	ActionUntagged   LogAction = "untagged"
	ActionPinned     LogAction = "pinned"
	ActionUnpinned   LogAction = "unpinned"
)

// NoteLog is one immutable audit record of an action taken on a note.
// Rows are only ever created, never updated; they disappear only when
// their note is hard-deleted.
type NoteLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NoteID    uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE" json:"note_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Action    LogAction `gorm:"type:varchar(20);not null;index" json:"action"`
	Extras    JSONMap   `gorm:"type:jsonb" json:"extras,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *NoteLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
