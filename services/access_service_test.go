package services

import (
	"testing"

	"ambernote/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolveRole(t *testing.T) {
	db := setupServiceTest(t)
	service := NewAccessService()

	space := seedSpace(t, db, "Workspace")
	user := seedUser(t, db, "member@example.com", false)
	seedMember(t, db, space, user, models.MemberRole)

	role, found, err := service.ResolveRole(db, user.ID, &space)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.MemberRole, role)

	// No membership row means no role, not an error.
	stranger := seedUser(t, db, "stranger@example.com", false)
	_, found, err = service.ResolveRole(db, stranger.ID, &space)
	assert.NoError(t, err)
	assert.False(t, found)

	// A nil target resolves to nothing.
	_, found, err = service.ResolveRole(db, user.ID, nil)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestResolveRolePerSpace(t *testing.T) {
	db := setupServiceTest(t)
	service := NewAccessService()

	spaceA := seedSpace(t, db, "Alpha")
	spaceB := seedSpace(t, db, "Beta")
	user := seedUser(t, db, "user@example.com", false)
	seedMember(t, db, spaceA, user, models.OwnerRole)
	seedMember(t, db, spaceB, user, models.GuestRole)

	// Roles do not leak across spaces, even for the same user.
	role, found, err := service.ResolveRole(db, user.ID, &spaceA)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.OwnerRole, role)

	role, found, err = service.ResolveRole(db, user.ID, &spaceB)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.GuestRole, role)
}

func TestResolveRoleThroughScopedResource(t *testing.T) {
	db := setupServiceTest(t)
	service := NewAccessService()

	space := seedSpace(t, db, "Workspace")
	user := seedUser(t, db, "member@example.com", false)
	seedMember(t, db, space, user, models.GuestRole)
	note := seedNote(t, db, space, "A note")

	// A note resolves through its owning space.
	role, found, err := service.ResolveRole(db, user.ID, &note)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.GuestRole, role)
}

func TestAuthorizeRoleThresholds(t *testing.T) {
	db := setupServiceTest(t)
	service := NewAccessService()

	space := seedSpace(t, db, "Workspace")
	owner := seedUser(t, db, "owner@example.com", false)
	member := seedUser(t, db, "member@example.com", false)
	guest := seedUser(t, db, "guest@example.com", false)
	outsider := seedUser(t, db, "outsider@example.com", false)
	seedMember(t, db, space, owner, models.OwnerRole)
	seedMember(t, db, space, member, models.MemberRole)
	seedMember(t, db, space, guest, models.GuestRole)

	cases := []struct {
		name     string
		actor    models.User
		resource ResourceType
		action   AccessAction
		allowed  bool
	}{
		{"guest reads notes", guest, NoteResource, ActionRead, true},
		{"guest cannot create notes", guest, NoteResource, ActionCreate, false},
		{"guest cannot create tags", guest, TagResource, ActionCreate, false},
		{"guest reads note logs", guest, NoteLogResource, ActionRead, true},
		{"member creates notes", member, NoteResource, ActionCreate, true},
		{"member updates notes", member, NoteResource, ActionUpdate, true},
		{"member cannot hard delete notes", member, NoteResource, ActionDelete, false},
		{"member creates tags", member, TagResource, ActionCreate, true},
		{"member cannot add members", member, MemberResource, ActionCreate, false},
		{"member cannot update space", member, NotespaceResource, ActionUpdate, false},
		{"owner adds members", owner, MemberResource, ActionCreate, true},
		{"owner updates space", owner, NotespaceResource, ActionUpdate, true},
		{"owner deletes space", owner, NotespaceResource, ActionDelete, true},
		{"owner cannot hard delete notes", owner, NoteResource, ActionDelete, false},
		{"outsider reads nothing", outsider, NoteResource, ActionRead, false},
		{"outsider cannot list members", outsider, MemberResource, ActionList, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := service.Authorize(db, tc.actor, tc.resource, tc.action, &space)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestAuthorizeAdminBypass(t *testing.T) {
	db := setupServiceTest(t)
	service := NewAccessService()

	space := seedSpace(t, db, "Workspace")
	admin := seedUser(t, db, "admin@example.com", true)

	// Admins need no membership at all.
	assert.NoError(t, service.Authorize(db, admin, NoteResource, ActionRead, &space))
	assert.NoError(t, service.Authorize(db, admin, NoteResource, ActionCreate, &space))
	assert.NoError(t, service.Authorize(db, admin, NoteResource, ActionDelete, &space))
	assert.NoError(t, service.Authorize(db, admin, NotespaceResource, ActionCreate, nil))
	assert.NoError(t, service.Authorize(db, admin, NotespaceResource, ActionList, nil))
}

func TestAuthorizeStaffOnlyFlagIsEnough(t *testing.T) {
	db := setupServiceTest(t)
	service := NewAccessService()

	space := seedSpace(t, db, "Workspace")
	staff := models.User{ID: uuid.New(), IsStaff: true}

	assert.NoError(t, service.Authorize(db, staff, NotespaceResource, ActionCreate, nil))
	assert.NoError(t, service.Authorize(db, staff, NoteResource, ActionDelete, &space))
}

func TestAuthorizeNoteLogsImmutable(t *testing.T) {
	db := setupServiceTest(t)
	service := NewAccessService()

	space := seedSpace(t, db, "Workspace")
	admin := seedUser(t, db, "admin@example.com", true)
	owner := seedUser(t, db, "owner@example.com", false)
	seedMember(t, db, space, owner, models.OwnerRole)

	// Log writes are refused for everyone, including admins.
	for _, actor := range []models.User{admin, owner} {
		assert.ErrorIs(t, service.Authorize(db, actor, NoteLogResource, ActionCreate, &space), ErrForbidden)
		assert.ErrorIs(t, service.Authorize(db, actor, NoteLogResource, ActionUpdate, &space), ErrForbidden)
		assert.ErrorIs(t, service.Authorize(db, actor, NoteLogResource, ActionDelete, &space), ErrForbidden)
	}
}

func TestAuthorizeUnknownActionDenied(t *testing.T) {
	db := setupServiceTest(t)
	service := NewAccessService()

	admin := seedUser(t, db, "admin@example.com", true)
	// User delete has no rule, so it is denied even for admins.
	assert.ErrorIs(t, service.Authorize(db, admin, UserResource, ActionDelete, nil), ErrForbidden)
}

func TestAuthorizeUser(t *testing.T) {
	service := NewAccessService()

	admin := models.User{ID: uuid.New(), IsStaff: true}
	user := models.User{ID: uuid.New()}
	other := uuid.New()

	assert.NoError(t, service.AuthorizeUser(admin, ActionList, uuid.Nil))
	assert.ErrorIs(t, service.AuthorizeUser(user, ActionList, uuid.Nil), ErrForbidden)

	assert.NoError(t, service.AuthorizeUser(user, ActionRead, user.ID))
	assert.NoError(t, service.AuthorizeUser(user, ActionUpdate, user.ID))
	assert.ErrorIs(t, service.AuthorizeUser(user, ActionRead, other), ErrForbidden)
	assert.ErrorIs(t, service.AuthorizeUser(user, ActionUpdate, other), ErrForbidden)
	assert.NoError(t, service.AuthorizeUser(admin, ActionUpdate, other))
}

func TestGetActor(t *testing.T) {
	db := setupServiceTest(t)
	service := NewAccessService()

	user := seedUser(t, db, "user@example.com", false)

	actor, err := service.GetActor(db, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, actor.ID)

	_, err = service.GetActor(db, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
