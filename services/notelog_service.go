package services

import (
	"errors"

	"ambernote/database"
	"ambernote/models"

	"gorm.io/gorm"
)

type NoteLogServiceInterface interface {
	GetNoteLogById(db *database.Database, id string, actorID string) (models.NoteLog, error)
	GetNoteLogs(db *database.Database, params map[string]interface{}, actorID string) ([]models.NoteLog, error)
}

// NoteLogService only reads. Log entries are created by the note
// mutation paths and are immutable afterwards; no write operation
// exists here on purpose.
type NoteLogService struct{}

func NewNoteLogService() *NoteLogService {
	return &NoteLogService{}
}

func (s *NoteLogService) GetNoteLogById(db *database.Database, id string, actorID string) (models.NoteLog, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.NoteLog{}, err
	}

	logID, err := parseID(id, ErrNoteLogNotFound)
	if err != nil {
		return models.NoteLog{}, err
	}

	var noteLog models.NoteLog
	if err := db.DB.First(&noteLog, "id = ?", logID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NoteLog{}, ErrNoteLogNotFound
		}
		return models.NoteLog{}, err
	}

	var note models.Note
	if err := db.DB.First(&note, "id = ?", noteLog.NoteID).Error; err != nil {
		return models.NoteLog{}, err
	}

	// Log access mirrors the note's own read rights.
	if err := AccessServiceInstance.Authorize(db, actor, NoteLogResource, ActionRead, &note); err != nil {
		return models.NoteLog{}, err
	}

	return noteLog, nil
}

// GetNoteLogs lists the audit trail of one note. The note identifier is
// mandatory; missing it is a malformed request, not a denial.
func (s *NoteLogService) GetNoteLogs(db *database.Database, params map[string]interface{}, actorID string) ([]models.NoteLog, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return nil, err
	}

	noteIDStr, ok := params["note"].(string)
	if !ok || noteIDStr == "" {
		return nil, ErrNoteRequired
	}

	noteID, err := parseID(noteIDStr, ErrNoteNotFound)
	if err != nil {
		return nil, err
	}

	var note models.Note
	if err := db.DB.First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, NoteLogResource, ActionList, &note); err != nil {
		return nil, err
	}

	query := db.DB.Where("note_id = ?", note.ID)
	if action, ok := params["action"].(string); ok && action != "" {
		query = query.Where("action = ?", action)
	}

	var logs []models.NoteLog
	if err := query.Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Don't initialize here, will be set properly in main.go
var NoteLogServiceInstance NoteLogServiceInterface
