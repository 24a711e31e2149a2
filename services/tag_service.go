package services

import (
	"errors"

	"ambernote/database"
	"ambernote/models"

	"gorm.io/gorm"
)

type TagServiceInterface interface {
	CreateTag(db *database.Database, tagData map[string]interface{}, actorID string) (models.Tag, error)
	GetTagById(db *database.Database, id string, actorID string) (models.Tag, error)
	UpdateTag(db *database.Database, id string, updatedData map[string]interface{}, actorID string) (models.Tag, error)
	DeleteTag(db *database.Database, id string, actorID string) error
	GetTags(db *database.Database, params map[string]interface{}, actorID string) ([]models.Tag, error)
}

type TagService struct{}

func NewTagService() *TagService {
	return &TagService{}
}

// CreateTag creates a tag in a note space. Any member (not guests) may
// create tags; the name must be unique within the space.
func (s *TagService) CreateTag(db *database.Database, tagData map[string]interface{}, actorID string) (models.Tag, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.Tag{}, err
	}

	space, err := resolveScope(db, tagData["notespace"])
	if err != nil {
		return models.Tag{}, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, TagResource, ActionCreate, &space); err != nil {
		return models.Tag{}, err
	}

	name, ok := tagData["name"].(string)
	if !ok || name == "" {
		return models.Tag{}, ErrInvalidInput
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Tag{}, tx.Error
	}

	var existing int64
	if err := tx.Model(&models.Tag{}).
		Where("notespace_id = ? AND name = ?", space.ID, name).
		Count(&existing).Error; err != nil {
		tx.Rollback()
		return models.Tag{}, err
	}
	if existing > 0 {
		tx.Rollback()
		return models.Tag{}, ErrTagExists
	}

	tag := models.Tag{
		NotespaceID: space.ID,
		Name:        name,
		Extras:      models.JSONMap{},
	}
	if extras, ok := tagData["extras"].(map[string]interface{}); ok {
		tag.Extras = models.JSONMap(extras)
	}

	if err := tx.Create(&tag).Error; err != nil {
		tx.Rollback()
		return models.Tag{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Tag{}, err
	}

	return tag, nil
}

func (s *TagService) GetTagById(db *database.Database, id string, actorID string) (models.Tag, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.Tag{}, err
	}

	tagID, err := parseID(id, ErrTagNotFound)
	if err != nil {
		return models.Tag{}, err
	}

	var tag models.Tag
	if err := db.DB.First(&tag, "id = ?", tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Tag{}, ErrTagNotFound
		}
		return models.Tag{}, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, TagResource, ActionRead, &tag); err != nil {
		return models.Tag{}, err
	}

	return tag, nil
}

func (s *TagService) UpdateTag(db *database.Database, id string, updatedData map[string]interface{}, actorID string) (models.Tag, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.Tag{}, err
	}

	tagID, err := parseID(id, ErrTagNotFound)
	if err != nil {
		return models.Tag{}, err
	}

	var tag models.Tag
	if err := db.DB.First(&tag, "id = ?", tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Tag{}, ErrTagNotFound
		}
		return models.Tag{}, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, TagResource, ActionUpdate, &tag); err != nil {
		return models.Tag{}, err
	}

	name, ok := updatedData["name"].(string)
	if !ok || name == "" || name == tag.Name {
		return tag, nil
	}

	var existing int64
	if err := db.DB.Model(&models.Tag{}).
		Where("notespace_id = ? AND name = ? AND id <> ?", tag.NotespaceID, name, tag.ID).
		Count(&existing).Error; err != nil {
		return models.Tag{}, err
	}
	if existing > 0 {
		return models.Tag{}, ErrTagExists
	}

	if err := db.DB.Model(&tag).Update("name", name).Error; err != nil {
		return models.Tag{}, err
	}

	return tag, nil
}

func (s *TagService) DeleteTag(db *database.Database, id string, actorID string) error {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return err
	}

	tagID, err := parseID(id, ErrTagNotFound)
	if err != nil {
		return err
	}

	var tag models.Tag
	if err := db.DB.First(&tag, "id = ?", tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	if err := AccessServiceInstance.Authorize(db, actor, TagResource, ActionDelete, &tag); err != nil {
		return err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Exec("DELETE FROM note_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&tag).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *TagService) GetTags(db *database.Database, params map[string]interface{}, actorID string) ([]models.Tag, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return nil, err
	}

	space, err := resolveScope(db, params["notespace"])
	if err != nil {
		return nil, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, TagResource, ActionList, &space); err != nil {
		return nil, err
	}

	query := db.DB.Where("notespace_id = ?", space.ID)
	if name, ok := params["name"].(string); ok && name != "" {
		query = query.Where("name = ?", name)
	}

	var tags []models.Tag
	if err := query.Order("created_at DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Don't initialize here, will be set properly in main.go
var TagServiceInstance TagServiceInterface
