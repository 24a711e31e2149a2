package services

import (
	"errors"

	"ambernote/database"
	"ambernote/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessAction is one category of operation evaluated against the rule
// table below.
type AccessAction string

const (
	ActionList   AccessAction = "list"
	ActionRead   AccessAction = "read"
	ActionCreate AccessAction = "create"
	ActionUpdate AccessAction = "update"
	ActionDelete AccessAction = "delete"
)

// ResourceType identifies the kind of resource a rule applies to.
type ResourceType string

const (
	UserResource      ResourceType = "user"
	NotespaceResource ResourceType = "notespace"
	MemberResource    ResourceType = "member"
	TagResource       ResourceType = "tag"
	NoteResource      ResourceType = "note"
	NoteLogResource   ResourceType = "notelog"
)

// accessRule is one row of the authorization table. Exactly one of the
// fields is meaningful per rule:
//   - deny: always refused, even for admins
//   - adminOnly: staff/superuser only
//   - selfOrAdmin: staff/superuser, or the actor is the target user
//   - minRole: resolved membership role must rank at least this high
//     (staff/superuser bypass the threshold)
type accessRule struct {
	minRole     models.RoleType
	adminOnly   bool
	selfOrAdmin bool
	deny        bool
}

// accessRules maps (resource, action) to its rule. Actions missing for
// a resource are denied outright.
var accessRules = map[ResourceType]map[AccessAction]accessRule{
	NotespaceResource: {
		ActionList:   {adminOnly: true},
		ActionRead:   {minRole: models.GuestRole},
		ActionCreate: {adminOnly: true},
		ActionUpdate: {minRole: models.OwnerRole},
		ActionDelete: {minRole: models.OwnerRole},
	},
	MemberResource: {
		ActionList:   {minRole: models.GuestRole},
		ActionRead:   {minRole: models.GuestRole},
		ActionCreate: {minRole: models.OwnerRole},
		ActionUpdate: {minRole: models.OwnerRole},
		ActionDelete: {minRole: models.OwnerRole},
	},
	TagResource: {
		ActionList:   {minRole: models.GuestRole},
		ActionRead:   {minRole: models.GuestRole},
		ActionCreate: {minRole: models.MemberRole},
		ActionUpdate: {minRole: models.MemberRole},
		ActionDelete: {minRole: models.MemberRole},
	},
	NoteResource: {
		ActionList:   {minRole: models.GuestRole},
		ActionRead:   {minRole: models.GuestRole},
		ActionCreate: {minRole: models.MemberRole},
		ActionUpdate: {minRole: models.MemberRole},
		// Hard delete erases history; members use the trash flag instead.
		ActionDelete: {adminOnly: true},
	},
	NoteLogResource: {
		ActionList:   {minRole: models.GuestRole},
		ActionRead:   {minRole: models.GuestRole},
		ActionCreate: {deny: true},
		ActionUpdate: {deny: true},
		ActionDelete: {deny: true},
	},
	UserResource: {
		ActionList:   {adminOnly: true},
		ActionRead:   {selfOrAdmin: true},
		ActionUpdate: {selfOrAdmin: true},
	},
}

type AccessServiceInterface interface {
	GetActor(db *database.Database, actorID uuid.UUID) (models.User, error)
	ResolveRole(db *database.Database, userID uuid.UUID, target models.SpaceScoped) (models.RoleType, bool, error)
	Authorize(db *database.Database, actor models.User, resource ResourceType, action AccessAction, target models.SpaceScoped) error
	AuthorizeUser(actor models.User, action AccessAction, targetUserID uuid.UUID) error
}

type AccessService struct{}

func NewAccessService() *AccessService {
	return &AccessService{}
}

// GetActor loads the acting principal so that its staff/superuser flags
// are available to the evaluator.
func (s *AccessService) GetActor(db *database.Database, actorID uuid.UUID) (models.User, error) {
	var actor models.User
	if err := db.DB.First(&actor, "id = ?", actorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return actor, nil
}

// ResolveRole looks up the user's role in the space owning the target.
// The second return value is false when no membership exists. Pure
// lookup against the unique (notespace, user) index, no side effects.
func (s *AccessService) ResolveRole(db *database.Database, userID uuid.UUID, target models.SpaceScoped) (models.RoleType, bool, error) {
	if target == nil {
		return "", false, nil
	}

	spaceID := target.SpaceID()
	if spaceID == uuid.Nil {
		return "", false, nil
	}

	var member models.Member
	err := db.DB.Where("notespace_id = ? AND user_id = ?", spaceID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	return member.Role, true, nil
}

// Authorize evaluates the rule for (resource, action) against the
// target's space. Absence of any membership is a denial, not an error.
func (s *AccessService) Authorize(db *database.Database, actor models.User, resource ResourceType, action AccessAction, target models.SpaceScoped) error {
	rule, ok := accessRules[resource][action]
	if !ok || rule.deny {
		return ErrForbidden
	}

	// Staff and superusers short-circuit every non-deny rule.
	if actor.IsAdmin() {
		return nil
	}

	if rule.adminOnly || rule.selfOrAdmin {
		return ErrForbidden
	}

	role, found, err := s.ResolveRole(db, actor.ID, target)
	if err != nil {
		return err
	}
	if !found || !role.AtLeast(rule.minRole) {
		return ErrForbidden
	}

	return nil
}

// AuthorizeUser evaluates the self-or-admin rules for user resources.
func (s *AccessService) AuthorizeUser(actor models.User, action AccessAction, targetUserID uuid.UUID) error {
	rule, ok := accessRules[UserResource][action]
	if !ok || rule.deny {
		return ErrForbidden
	}

	if actor.IsAdmin() {
		return nil
	}

	if rule.selfOrAdmin && actor.ID == targetUserID {
		return nil
	}

	return ErrForbidden
}

var AccessServiceInstance AccessServiceInterface = NewAccessService()
