package services

import (
	"testing"

	"ambernote/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTag(t *testing.T) {
	db := setupServiceTest(t)
	service := NewTagService()

	space := seedSpace(t, db, "Workspace")
	member := seedUser(t, db, "member@example.com", false)
	guest := seedUser(t, db, "guest@example.com", false)
	seedMember(t, db, space, member, models.MemberRole)
	seedMember(t, db, space, guest, models.GuestRole)

	tag, err := service.CreateTag(db, map[string]interface{}{
		"notespace": space.ID.String(),
		"name":      "urgent",
	}, member.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "urgent", tag.Name)
	assert.Equal(t, space.ID, tag.NotespaceID)

	// Guests are read-only, tags included.
	_, err = service.CreateTag(db, map[string]interface{}{
		"notespace": space.ID.String(),
		"name":      "guest-tag",
	}, guest.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)

	// The notespace parameter is mandatory and checked first.
	_, err = service.CreateTag(db, map[string]interface{}{
		"name": "unscoped",
	}, member.ID.String())
	assert.ErrorIs(t, err, ErrNotespaceRequired)
}

func TestCreateTagDuplicateName(t *testing.T) {
	db := setupServiceTest(t)
	service := NewTagService()

	space := seedSpace(t, db, "Workspace")
	other := seedSpace(t, db, "Other")
	member := seedUser(t, db, "member@example.com", false)
	seedMember(t, db, space, member, models.MemberRole)
	seedMember(t, db, other, member, models.MemberRole)

	_, err := service.CreateTag(db, map[string]interface{}{
		"notespace": space.ID.String(),
		"name":      "urgent",
	}, member.ID.String())
	require.NoError(t, err)

	_, err = service.CreateTag(db, map[string]interface{}{
		"notespace": space.ID.String(),
		"name":      "urgent",
	}, member.ID.String())
	assert.ErrorIs(t, err, ErrTagExists)

	// Uniqueness is per space, not global.
	_, err = service.CreateTag(db, map[string]interface{}{
		"notespace": other.ID.String(),
		"name":      "urgent",
	}, member.ID.String())
	assert.NoError(t, err)
}

func TestUpdateTagRename(t *testing.T) {
	db := setupServiceTest(t)
	service := NewTagService()

	space := seedSpace(t, db, "Workspace")
	member := seedUser(t, db, "member@example.com", false)
	seedMember(t, db, space, member, models.MemberRole)
	tag := seedTag(t, db, space, "old-name")
	seedTag(t, db, space, "taken")

	renamed, err := service.UpdateTag(db, tag.ID.String(), map[string]interface{}{
		"name": "new-name",
	}, member.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "new-name", renamed.Name)

	_, err = service.UpdateTag(db, tag.ID.String(), map[string]interface{}{
		"name": "taken",
	}, member.ID.String())
	assert.ErrorIs(t, err, ErrTagExists)
}

func TestDeleteTagCleansLinks(t *testing.T) {
	db := setupServiceTest(t)
	tagService := NewTagService()
	noteService := NewNoteService()

	space := seedSpace(t, db, "Workspace")
	member := seedUser(t, db, "member@example.com", false)
	seedMember(t, db, space, member, models.MemberRole)
	note := seedNote(t, db, space, "Tagged note")
	tag := seedTag(t, db, space, "doomed")

	_, changed, err := noteService.AttachTag(db, note.ID.String(), tag.ID.String(), member.ID.String())
	require.NoError(t, err)
	require.True(t, changed)

	require.NoError(t, tagService.DeleteTag(db, tag.ID.String(), member.ID.String()))

	var links int64
	require.NoError(t, db.DB.Table("note_tags").Where("note_id = ?", note.ID).Count(&links).Error)
	assert.Zero(t, links)

	// The note itself is untouched.
	var count int64
	require.NoError(t, db.DB.Model(&models.Note{}).Where("id = ?", note.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetTagsScoped(t *testing.T) {
	db := setupServiceTest(t)
	service := NewTagService()

	space := seedSpace(t, db, "Workspace")
	other := seedSpace(t, db, "Other")
	guest := seedUser(t, db, "guest@example.com", false)
	seedMember(t, db, space, guest, models.GuestRole)
	seedTag(t, db, space, "one")
	seedTag(t, db, space, "two")
	seedTag(t, db, other, "elsewhere")

	tags, err := service.GetTags(db, map[string]interface{}{
		"notespace": space.ID.String(),
	}, guest.ID.String())
	assert.NoError(t, err)
	assert.Len(t, tags, 2)

	_, err = service.GetTags(db, map[string]interface{}{}, guest.ID.String())
	assert.ErrorIs(t, err, ErrNotespaceRequired)

	_, err = service.GetTags(db, map[string]interface{}{
		"notespace": "not-a-uuid",
	}, guest.ID.String())
	assert.ErrorIs(t, err, ErrNotespaceNotFound)

	// Same for a malformed tag id on the by-id path.
	_, err = service.GetTagById(db, "not-a-uuid", guest.ID.String())
	assert.ErrorIs(t, err, ErrTagNotFound)
}
