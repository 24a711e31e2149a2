package services

import (
	"errors"

	"ambernote/database"
	"ambernote/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotespaceServiceInterface interface {
	CreateNotespace(db *database.Database, spaceData map[string]interface{}, actorID string) (models.NoteSpace, error)
	GetNotespaceById(db *database.Database, id string, actorID string) (models.NoteSpace, error)
	UpdateNotespace(db *database.Database, id string, updatedData map[string]interface{}, actorID string) (models.NoteSpace, error)
	DeleteNotespace(db *database.Database, id string, actorID string) error
	GetNotespaces(db *database.Database, params map[string]interface{}, actorID string) ([]models.NoteSpace, error)
}

type NotespaceService struct{}

func NewNotespaceService() *NotespaceService {
	return &NotespaceService{}
}

func loadActor(db *database.Database, actorID string) (models.User, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return models.User{}, ErrInvalidInput
	}
	return AccessServiceInstance.GetActor(db, actorUUID)
}

// CreateNotespace creates a note space and atomically grants the
// creator owner membership. Note spaces are not self-service; only
// staff/superusers may create them.
func (s *NotespaceService) CreateNotespace(db *database.Database, spaceData map[string]interface{}, actorID string) (models.NoteSpace, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.NoteSpace{}, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, NotespaceResource, ActionCreate, nil); err != nil {
		return models.NoteSpace{}, err
	}

	name, ok := spaceData["name"].(string)
	if !ok || name == "" {
		return models.NoteSpace{}, ErrInvalidInput
	}

	spaceType := models.PersonalSpace
	if typeStr, ok := spaceData["type"].(string); ok && typeStr != "" {
		switch models.SpaceType(typeStr) {
		case models.PersonalSpace, models.TeamSpace:
			spaceType = models.SpaceType(typeStr)
		default:
			return models.NoteSpace{}, ErrInvalidInput
		}
	}

	space := models.NoteSpace{
		Type:   spaceType,
		Name:   name,
		Extras: models.JSONMap{},
	}
	if extras, ok := spaceData["extras"].(map[string]interface{}); ok {
		space.Extras = models.JSONMap(extras)
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.NoteSpace{}, tx.Error
	}

	if err := tx.Create(&space).Error; err != nil {
		tx.Rollback()
		return models.NoteSpace{}, err
	}

	// The creator becomes the owner in the same transaction; a space
	// without its owner membership is never observable.
	member := models.Member{
		NotespaceID: space.ID,
		UserID:      actor.ID,
		Role:        models.OwnerRole,
		Extras:      models.JSONMap{},
	}
	if err := tx.Create(&member).Error; err != nil {
		tx.Rollback()
		return models.NoteSpace{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.NoteSpace{}, err
	}

	return space, nil
}

func (s *NotespaceService) GetNotespaceById(db *database.Database, id string, actorID string) (models.NoteSpace, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.NoteSpace{}, err
	}

	spaceID, err := parseID(id, ErrNotespaceNotFound)
	if err != nil {
		return models.NoteSpace{}, err
	}

	var space models.NoteSpace
	if err := db.DB.First(&space, "id = ?", spaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NoteSpace{}, ErrNotespaceNotFound
		}
		return models.NoteSpace{}, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, NotespaceResource, ActionRead, &space); err != nil {
		return models.NoteSpace{}, err
	}

	return space, nil
}

func (s *NotespaceService) UpdateNotespace(db *database.Database, id string, updatedData map[string]interface{}, actorID string) (models.NoteSpace, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.NoteSpace{}, err
	}

	spaceID, err := parseID(id, ErrNotespaceNotFound)
	if err != nil {
		return models.NoteSpace{}, err
	}

	var space models.NoteSpace
	if err := db.DB.First(&space, "id = ?", spaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NoteSpace{}, ErrNotespaceNotFound
		}
		return models.NoteSpace{}, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, NotespaceResource, ActionUpdate, &space); err != nil {
		return models.NoteSpace{}, err
	}

	changes := map[string]interface{}{}
	if name, ok := updatedData["name"].(string); ok && name != "" {
		changes["name"] = name
	}
	if extras, ok := updatedData["extras"].(map[string]interface{}); ok {
		changes["extras"] = models.JSONMap(extras)
	}

	if len(changes) == 0 {
		return space, nil
	}

	if err := db.DB.Model(&space).Updates(changes).Error; err != nil {
		return models.NoteSpace{}, err
	}

	return space, nil
}

// DeleteNotespace removes the space and all its dependents (members,
// tags, notes and their logs) in one transaction. Cascades are explicit
// so no storage-level constraint support is assumed.
func (s *NotespaceService) DeleteNotespace(db *database.Database, id string, actorID string) error {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return err
	}

	spaceID, err := parseID(id, ErrNotespaceNotFound)
	if err != nil {
		return err
	}

	var space models.NoteSpace
	if err := db.DB.First(&space, "id = ?", spaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotespaceNotFound
		}
		return err
	}

	if err := AccessServiceInstance.Authorize(db, actor, NotespaceResource, ActionDelete, &space); err != nil {
		return err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var noteIDs []uuid.UUID
	if err := tx.Model(&models.Note{}).Where("notespace_id = ?", space.ID).Pluck("id", &noteIDs).Error; err != nil {
		tx.Rollback()
		return err
	}

	if len(noteIDs) > 0 {
		if err := tx.Where("note_id IN ?", noteIDs).Delete(&models.NoteLog{}).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Exec("DELETE FROM note_tags WHERE note_id IN ?", noteIDs).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Where("notespace_id = ?", space.ID).Delete(&models.Note{}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Where("notespace_id = ?", space.ID).Delete(&models.Tag{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("notespace_id = ?", space.ID).Delete(&models.Member{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&space).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// GetNotespaces lists every note space. Restricted to staff/superusers;
// regular members reach their spaces through the scoped collections.
func (s *NotespaceService) GetNotespaces(db *database.Database, params map[string]interface{}, actorID string) ([]models.NoteSpace, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return nil, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, NotespaceResource, ActionList, nil); err != nil {
		return nil, err
	}

	var spaces []models.NoteSpace
	query := db.DB

	if typeStr, ok := params["type"].(string); ok && typeStr != "" {
		query = query.Where("type = ?", typeStr)
	}
	if name, ok := params["name"].(string); ok && name != "" {
		query = query.Where("name = ?", name)
	}

	if err := query.Order("created_at DESC").Find(&spaces).Error; err != nil {
		return nil, err
	}
	return spaces, nil
}

// Don't initialize here, will be set properly in main.go
var NotespaceServiceInstance NotespaceServiceInterface
