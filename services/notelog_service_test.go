package services

import (
	"testing"

	"ambernote/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNoteLogs(t *testing.T) {
	db := setupServiceTest(t)
	noteService := NewNoteService()
	logService := NewNoteLogService()

	space := seedSpace(t, db, "Workspace")
	member := seedUser(t, db, "member@example.com", false)
	guest := seedUser(t, db, "guest@example.com", false)
	seedMember(t, db, space, member, models.MemberRole)
	seedMember(t, db, space, guest, models.GuestRole)

	note, err := noteService.CreateNote(db, map[string]interface{}{
		"notespace": space.ID.String(),
		"title":     "Audited",
	}, member.ID.String())
	require.NoError(t, err)
	_, err = noteService.UpdateNote(db, note.ID.String(), map[string]interface{}{
		"title": "Audited twice",
	}, member.ID.String())
	require.NoError(t, err)

	// Guests can read the trail they cannot write to.
	logs, err := logService.GetNoteLogs(db, map[string]interface{}{
		"note": note.ID.String(),
	}, guest.ID.String())
	assert.NoError(t, err)
	assert.Len(t, logs, 2)

	// Newest first.
	assert.Equal(t, models.ActionUpdated, logs[0].Action)
	assert.Equal(t, models.ActionCreated, logs[1].Action)

	logs, err = logService.GetNoteLogs(db, map[string]interface{}{
		"note":   note.ID.String(),
		"action": string(models.ActionCreated),
	}, guest.ID.String())
	assert.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionCreated, logs[0].Action)
}

func TestGetNoteLogsRequiresNote(t *testing.T) {
	db := setupServiceTest(t)
	service := NewNoteLogService()

	user := seedUser(t, db, "user@example.com", false)

	_, err := service.GetNoteLogs(db, map[string]interface{}{}, user.ID.String())
	assert.ErrorIs(t, err, ErrNoteRequired)

	_, err = service.GetNoteLogs(db, map[string]interface{}{
		"note": "not-a-uuid",
	}, user.ID.String())
	assert.ErrorIs(t, err, ErrNoteNotFound)

	_, err = service.GetNoteLogs(db, map[string]interface{}{
		"note": uuid.New().String(),
	}, user.ID.String())
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestGetNoteLogsDeniedForOutsiders(t *testing.T) {
	db := setupServiceTest(t)
	noteService := NewNoteService()
	logService := NewNoteLogService()

	space := seedSpace(t, db, "Workspace")
	member := seedUser(t, db, "member@example.com", false)
	seedMember(t, db, space, member, models.MemberRole)
	outsider := seedUser(t, db, "outsider@example.com", false)

	note, err := noteService.CreateNote(db, map[string]interface{}{
		"notespace": space.ID.String(),
		"title":     "Private",
	}, member.ID.String())
	require.NoError(t, err)

	_, err = logService.GetNoteLogs(db, map[string]interface{}{
		"note": note.ID.String(),
	}, outsider.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetNoteLogById(t *testing.T) {
	db := setupServiceTest(t)
	noteService := NewNoteService()
	logService := NewNoteLogService()

	space := seedSpace(t, db, "Workspace")
	member := seedUser(t, db, "member@example.com", false)
	seedMember(t, db, space, member, models.MemberRole)
	outsider := seedUser(t, db, "outsider@example.com", false)

	note, err := noteService.CreateNote(db, map[string]interface{}{
		"notespace": space.ID.String(),
		"title":     "Audited",
	}, member.ID.String())
	require.NoError(t, err)

	logs := noteLogs(t, db, note)
	require.Len(t, logs, 1)

	found, err := logService.GetNoteLogById(db, logs[0].ID.String(), member.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, logs[0].ID, found.ID)
	assert.Equal(t, models.ActionCreated, found.Action)

	_, err = logService.GetNoteLogById(db, logs[0].ID.String(), outsider.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)

	// A missing or malformed log id is a missing log, not a missing note.
	_, err = logService.GetNoteLogById(db, uuid.New().String(), member.ID.String())
	assert.ErrorIs(t, err, ErrNoteLogNotFound)

	_, err = logService.GetNoteLogById(db, "not-a-uuid", member.ID.String())
	assert.ErrorIs(t, err, ErrNoteLogNotFound)
}
