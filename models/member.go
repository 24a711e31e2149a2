package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleType represents a member's capability level within one note space
type RoleType string

// Role types, totally ordered owner > member > guest
const (
	OwnerRole  RoleType = "owner"  // read-write notes and manage the space
	MemberRole RoleType = "member" // read-write notes
	GuestRole  RoleType = "guest"  // read-only
)

// RoleTypeFromString converts a string to a RoleType
func RoleTypeFromString(roleStr string) (RoleType, error) {
	switch roleStr {
	case "owner":
		return OwnerRole, nil
	case "member":
		return MemberRole, nil
	case "guest":
		return GuestRole, nil
	default:
		return "", errors.New("invalid role type")
	}
}

var roleRank = map[RoleType]int{
	OwnerRole:  3,
	MemberRole: 2,
	GuestRole:  1,
}

// AtLeast reports whether the role is as powerful as the required one.
func (r RoleType) AtLeast(required RoleType) bool {
	return roleRank[r] >= roleRank[required]
}

// Member ties a user to a note space with a role. Unique per
// (notespace, user) pair.
type Member struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NotespaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_members_space_user" json:"notespace_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_members_space_user" json:"user_id"`
	Role        RoleType  `gorm:"type:varchar(20);not null;index" json:"role"`
	Extras      JSONMap   `gorm:"type:jsonb" json:"extras,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *Member) SpaceID() uuid.UUID {
	return m.NotespaceID
}
