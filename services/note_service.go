package services

import (
	"errors"
	"reflect"

	"ambernote/broker"
	"ambernote/database"
	"ambernote/models"

	"gorm.io/gorm"
)

// NoteFlag names one of the three independent note state flags.
type NoteFlag string

const (
	FlagArchived NoteFlag = "is_archived"
	FlagPinned   NoteFlag = "is_pinned"
	FlagDeleted  NoteFlag = "is_deleted"
)

// flagActions maps a flag to the log actions recorded when it is set
// or cleared.
var flagActions = map[NoteFlag]struct {
	set   models.LogAction
	unset models.LogAction
}{
	FlagArchived: {set: models.ActionArchived, unset: models.ActionUnarchived},
	FlagPinned:   {set: models.ActionPinned, unset: models.ActionUnpinned},
	FlagDeleted:  {set: models.ActionDeleted, unset: models.ActionRestored},
}

type NoteServiceInterface interface {
	CreateNote(db *database.Database, noteData map[string]interface{}, actorID string) (models.Note, error)
	GetNoteById(db *database.Database, id string, actorID string) (models.Note, error)
	UpdateNote(db *database.Database, id string, updatedData map[string]interface{}, actorID string) (models.Note, error)
	SetNoteFlag(db *database.Database, id string, flag NoteFlag, value bool, actorID string) (models.Note, bool, error)
	AttachTag(db *database.Database, id string, tagID string, actorID string) (models.Note, bool, error)
	DetachTag(db *database.Database, id string, tagID string, actorID string) (models.Note, bool, error)
	HardDeleteNote(db *database.Database, id string, actorID string) error
	GetNotes(db *database.Database, params map[string]interface{}, actorID string) ([]models.Note, error)
}

type NoteService struct{}

func NewNoteService() *NoteService {
	return &NoteService{}
}

// CreateNote persists a new note with revision 1 and all flags cleared,
// together with its "created" log entry. Both writes share one
// transaction; a note without its creation log is never observable.
func (s *NoteService) CreateNote(db *database.Database, noteData map[string]interface{}, actorID string) (models.Note, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.Note{}, err
	}

	space, err := resolveScope(db, noteData["notespace"])
	if err != nil {
		return models.Note{}, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, NoteResource, ActionCreate, &space); err != nil {
		return models.Note{}, err
	}

	note := models.Note{
		NotespaceID: space.ID,
		Revision:    1,
		Content:     models.JSONMap{},
		Extras:      models.JSONMap{},
	}
	if title, ok := noteData["title"].(string); ok {
		note.Title = title
	}
	if content, ok := noteData["content"].(map[string]interface{}); ok {
		note.Content = models.JSONMap(content)
	}
	if extras, ok := noteData["extras"].(map[string]interface{}); ok {
		note.Extras = models.JSONMap(extras)
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	if err := tx.Create(&note).Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	noteLog := models.NoteLog{
		NoteID: note.ID,
		UserID: actor.ID,
		Action: models.ActionCreated,
		Extras: models.JSONMap{
			"title":   note.Title,
			"content": map[string]interface{}(note.Content),
		},
	}
	if err := tx.Create(&noteLog).Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	broker.PublishNoteEvent(broker.NoteCreated, actor.ID, note)

	return note, nil
}

func (s *NoteService) GetNoteById(db *database.Database, id string, actorID string) (models.Note, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.Note{}, err
	}

	noteID, err := parseID(id, ErrNoteNotFound)
	if err != nil {
		return models.Note{}, err
	}

	var note models.Note
	if err := db.DB.Preload("Tags").First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, NoteResource, ActionRead, &note); err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// UpdateNote applies a content edit. The revision increments and an
// "updated" log entry (carrying the pre- and post-image) is written iff
// the title or content actually changed; a save with identical values
// writes nothing at all.
func (s *NoteService) UpdateNote(db *database.Database, id string, updatedData map[string]interface{}, actorID string) (models.Note, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.Note{}, err
	}

	noteID, err := parseID(id, ErrNoteNotFound)
	if err != nil {
		return models.Note{}, err
	}

	var note models.Note
	if err := db.DB.First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, NoteResource, ActionUpdate, &note); err != nil {
		return models.Note{}, err
	}

	newTitle := note.Title
	if title, ok := updatedData["title"].(string); ok {
		newTitle = title
	}
	newContent := map[string]interface{}(note.Content)
	if content, ok := updatedData["content"].(map[string]interface{}); ok {
		newContent = content
	}

	if newTitle == note.Title && reflect.DeepEqual(newContent, map[string]interface{}(note.Content)) {
		// Nothing changed: no revision bump and no log entry.
		return note, nil
	}

	oldTitle := note.Title
	oldContent := map[string]interface{}(note.Content)

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	note.Title = newTitle
	note.Content = models.JSONMap(newContent)
	note.Revision++

	if err := tx.Model(&note).Updates(map[string]interface{}{
		"title":    note.Title,
		"content":  note.Content,
		"revision": note.Revision,
	}).Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	noteLog := models.NoteLog{
		NoteID: note.ID,
		UserID: actor.ID,
		Action: models.ActionUpdated,
		Extras: models.JSONMap{
			"old": map[string]interface{}{"title": oldTitle, "content": oldContent},
			"new": map[string]interface{}{"title": newTitle, "content": newContent},
		},
	}
	if err := tx.Create(&noteLog).Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	broker.PublishNoteEvent(broker.NoteUpdated, actor.ID, note)

	return note, nil
}

// SetNoteFlag toggles one of the archived/pinned/deleted flags. When
// the flag already holds the requested value nothing is written and the
// returned bool is false; otherwise the flip and its log entry commit
// atomically.
func (s *NoteService) SetNoteFlag(db *database.Database, id string, flag NoteFlag, value bool, actorID string) (models.Note, bool, error) {
	actions, ok := flagActions[flag]
	if !ok {
		return models.Note{}, false, ErrInvalidInput
	}

	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.Note{}, false, err
	}

	noteID, err := parseID(id, ErrNoteNotFound)
	if err != nil {
		return models.Note{}, false, err
	}

	var note models.Note
	if err := db.DB.First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, false, ErrNoteNotFound
		}
		return models.Note{}, false, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, NoteResource, ActionUpdate, &note); err != nil {
		return models.Note{}, false, err
	}

	var current bool
	switch flag {
	case FlagArchived:
		current = note.IsArchived
	case FlagPinned:
		current = note.IsPinned
	case FlagDeleted:
		current = note.IsDeleted
	}

	if current == value {
		return note, false, nil
	}

	action := actions.unset
	if value {
		action = actions.set
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, false, tx.Error
	}

	if err := tx.Model(&note).Update(string(flag), value).Error; err != nil {
		tx.Rollback()
		return models.Note{}, false, err
	}

	noteLog := models.NoteLog{
		NoteID: note.ID,
		UserID: actor.ID,
		Action: action,
		Extras: models.JSONMap{},
	}
	if err := tx.Create(&noteLog).Error; err != nil {
		tx.Rollback()
		return models.Note{}, false, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, false, err
	}

	switch flag {
	case FlagArchived:
		note.IsArchived = value
	case FlagPinned:
		note.IsPinned = value
	case FlagDeleted:
		note.IsDeleted = value
	}

	broker.PublishNoteEvent(broker.NoteUpdated, actor.ID, note)

	return note, true, nil
}

// AttachTag links a tag from the same note space to the note. An
// already-attached tag is a no-op; otherwise the link and its "tagged"
// log entry commit atomically.
func (s *NoteService) AttachTag(db *database.Database, id string, tagID string, actorID string) (models.Note, bool, error) {
	return s.setTagLink(db, id, tagID, actorID, true)
}

// DetachTag removes a tag link; the inverse of AttachTag.
func (s *NoteService) DetachTag(db *database.Database, id string, tagID string, actorID string) (models.Note, bool, error) {
	return s.setTagLink(db, id, tagID, actorID, false)
}

func (s *NoteService) setTagLink(db *database.Database, id string, tagID string, actorID string, attach bool) (models.Note, bool, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.Note{}, false, err
	}

	noteID, err := parseID(id, ErrNoteNotFound)
	if err != nil {
		return models.Note{}, false, err
	}

	var note models.Note
	if err := db.DB.First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, false, ErrNoteNotFound
		}
		return models.Note{}, false, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, NoteResource, ActionUpdate, &note); err != nil {
		return models.Note{}, false, err
	}

	tagUUID, err := parseID(tagID, ErrTagNotFound)
	if err != nil {
		return models.Note{}, false, err
	}

	var tag models.Tag
	if err := db.DB.First(&tag, "id = ?", tagUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, false, ErrTagNotFound
		}
		return models.Note{}, false, err
	}

	// Cross-space references are never inferred; a tag from another
	// space is indistinguishable from a missing one.
	if tag.NotespaceID != note.NotespaceID {
		return models.Note{}, false, ErrTagNotFound
	}

	var linked int64
	if err := db.DB.Table("note_tags").
		Where("note_id = ? AND tag_id = ?", note.ID, tag.ID).
		Count(&linked).Error; err != nil {
		return models.Note{}, false, err
	}

	if attach == (linked > 0) {
		return note, false, nil
	}

	action := models.ActionUntagged
	if attach {
		action = models.ActionTagged
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, false, tx.Error
	}

	if attach {
		err = tx.Exec("INSERT INTO note_tags (note_id, tag_id) VALUES (?, ?)", note.ID, tag.ID).Error
	} else {
		err = tx.Exec("DELETE FROM note_tags WHERE note_id = ? AND tag_id = ?", note.ID, tag.ID).Error
	}
	if err != nil {
		tx.Rollback()
		return models.Note{}, false, err
	}

	noteLog := models.NoteLog{
		NoteID: note.ID,
		UserID: actor.ID,
		Action: action,
		Extras: models.JSONMap{
			"tag":  tag.ID.String(),
			"name": tag.Name,
		},
	}
	if err := tx.Create(&noteLog).Error; err != nil {
		tx.Rollback()
		return models.Note{}, false, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, false, err
	}

	broker.PublishNoteEvent(broker.NoteUpdated, actor.ID, note)

	return note, true, nil
}

// HardDeleteNote physically removes the note and, with it, every log
// entry it owns. Hard delete erases history on purpose; the trash flag
// is the member-accessible path, which keeps the logs.
func (s *NoteService) HardDeleteNote(db *database.Database, id string, actorID string) error {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return err
	}

	noteID, err := parseID(id, ErrNoteNotFound)
	if err != nil {
		return err
	}

	var note models.Note
	if err := db.DB.First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	if err := AccessServiceInstance.Authorize(db, actor, NoteResource, ActionDelete, &note); err != nil {
		return err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("note_id = ?", note.ID).Delete(&models.NoteLog{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Exec("DELETE FROM note_tags WHERE note_id = ?", note.ID).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&note).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	broker.PublishNoteEvent(broker.NoteDeleted, actor.ID, note)

	return nil
}

func (s *NoteService) GetNotes(db *database.Database, params map[string]interface{}, actorID string) ([]models.Note, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return nil, err
	}

	space, err := resolveScope(db, params["notespace"])
	if err != nil {
		return nil, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, NoteResource, ActionList, &space); err != nil {
		return nil, err
	}

	query := db.DB.Preload("Tags").Where("notespace_id = ?", space.ID)

	if title, ok := params["title"].(string); ok && title != "" {
		query = query.Where("title LIKE ?", "%"+title+"%")
	}
	for _, flag := range []string{"is_archived", "is_pinned", "is_deleted"} {
		if value, ok := params[flag].(bool); ok {
			query = query.Where(flag+" = ?", value)
		}
	}
	if tagID, ok := params["tag"].(string); ok && tagID != "" {
		tagUUID, err := parseID(tagID, ErrTagNotFound)
		if err != nil {
			return nil, err
		}
		query = query.Where("id IN (SELECT note_id FROM note_tags WHERE tag_id = ?)", tagUUID)
	}

	var notes []models.Note
	if err := query.Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Don't initialize here, will be set properly in main.go
var NoteServiceInstance NoteServiceInterface
