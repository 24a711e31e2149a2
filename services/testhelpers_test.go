package services

import (
	"testing"

	"ambernote/database"
	"ambernote/models"
	"ambernote/testutils"

	"github.com/stretchr/testify/require"
)

// Fixture helpers shared by the service tests. They write straight
// through gorm so the services under test see realistic rows.

func seedUser(t *testing.T, db *database.Database, email string, admin bool) models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Fullname:     "Test User",
		IsStaff:      admin,
		IsSuperuser:  admin,
		Extras:       models.JSONMap{},
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func seedSpace(t *testing.T, db *database.Database, name string) models.NoteSpace {
	t.Helper()
	space := models.NoteSpace{
		Type:   models.TeamSpace,
		Name:   name,
		Extras: models.JSONMap{},
	}
	require.NoError(t, db.DB.Create(&space).Error)
	return space
}

func seedMember(t *testing.T, db *database.Database, space models.NoteSpace, user models.User, role models.RoleType) models.Member {
	t.Helper()
	member := models.Member{
		NotespaceID: space.ID,
		UserID:      user.ID,
		Role:        role,
		Extras:      models.JSONMap{},
	}
	require.NoError(t, db.DB.Create(&member).Error)
	return member
}

func seedNote(t *testing.T, db *database.Database, space models.NoteSpace, title string) models.Note {
	t.Helper()
	note := models.Note{
		NotespaceID: space.ID,
		Title:       title,
		Content:     models.JSONMap{"body": "text"},
		Revision:    1,
		Extras:      models.JSONMap{},
	}
	require.NoError(t, db.DB.Create(&note).Error)
	return note
}

func seedTag(t *testing.T, db *database.Database, space models.NoteSpace, name string) models.Tag {
	t.Helper()
	tag := models.Tag{
		NotespaceID: space.ID,
		Name:        name,
		Extras:      models.JSONMap{},
	}
	require.NoError(t, db.DB.Create(&tag).Error)
	return tag
}

func noteLogs(t *testing.T, db *database.Database, note models.Note) []models.NoteLog {
	t.Helper()
	var logs []models.NoteLog
	require.NoError(t, db.DB.Where("note_id = ?", note.ID).Order("created_at ASC").Find(&logs).Error)
	return logs
}

func setupServiceTest(t *testing.T) *database.Database {
	t.Helper()
	return testutils.SetupTestDB(t)
}
