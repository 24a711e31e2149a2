package services

import (
	"errors"

	"ambernote/database"
	"ambernote/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberServiceInterface interface {
	CreateMember(db *database.Database, memberData map[string]interface{}, actorID string) (models.Member, error)
	GetMemberById(db *database.Database, id string, actorID string) (models.Member, error)
	UpdateMember(db *database.Database, id string, updatedData map[string]interface{}, actorID string) (models.Member, error)
	DeleteMember(db *database.Database, id string, actorID string) error
	GetMembers(db *database.Database, params map[string]interface{}, actorID string) ([]models.Member, error)
}

type MemberService struct{}

func NewMemberService() *MemberService {
	return &MemberService{}
}

// CreateMember adds a user to a note space. Owners (or admins) only;
// the (notespace, user) pair must be unique.
func (s *MemberService) CreateMember(db *database.Database, memberData map[string]interface{}, actorID string) (models.Member, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.Member{}, err
	}

	space, err := resolveScope(db, memberData["notespace"])
	if err != nil {
		return models.Member{}, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, MemberResource, ActionCreate, &space); err != nil {
		return models.Member{}, err
	}

	userIDStr, ok := memberData["user"].(string)
	if !ok || userIDStr == "" {
		return models.Member{}, ErrInvalidInput
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return models.Member{}, ErrUserNotFound
	}

	var userCount int64
	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).Count(&userCount).Error; err != nil {
		return models.Member{}, err
	}
	if userCount == 0 {
		return models.Member{}, ErrUserNotFound
	}

	roleStr, ok := memberData["role"].(string)
	if !ok {
		return models.Member{}, ErrInvalidInput
	}
	role, err := models.RoleTypeFromString(roleStr)
	if err != nil {
		return models.Member{}, ErrInvalidInput
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Member{}, tx.Error
	}

	var existing int64
	if err := tx.Model(&models.Member{}).
		Where("notespace_id = ? AND user_id = ?", space.ID, userID).
		Count(&existing).Error; err != nil {
		tx.Rollback()
		return models.Member{}, err
	}
	if existing > 0 {
		tx.Rollback()
		return models.Member{}, ErrMemberExists
	}

	member := models.Member{
		NotespaceID: space.ID,
		UserID:      userID,
		Role:        role,
		Extras:      models.JSONMap{},
	}
	if err := tx.Create(&member).Error; err != nil {
		tx.Rollback()
		return models.Member{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Member{}, err
	}

	return member, nil
}

func (s *MemberService) GetMemberById(db *database.Database, id string, actorID string) (models.Member, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.Member{}, err
	}

	memberID, err := parseID(id, ErrMemberNotFound)
	if err != nil {
		return models.Member{}, err
	}

	var member models.Member
	if err := db.DB.First(&member, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Member{}, ErrMemberNotFound
		}
		return models.Member{}, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, MemberResource, ActionRead, &member); err != nil {
		return models.Member{}, err
	}

	return member, nil
}

func (s *MemberService) UpdateMember(db *database.Database, id string, updatedData map[string]interface{}, actorID string) (models.Member, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return models.Member{}, err
	}

	memberID, err := parseID(id, ErrMemberNotFound)
	if err != nil {
		return models.Member{}, err
	}

	var member models.Member
	if err := db.DB.First(&member, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Member{}, ErrMemberNotFound
		}
		return models.Member{}, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, MemberResource, ActionUpdate, &member); err != nil {
		return models.Member{}, err
	}

	roleStr, ok := updatedData["role"].(string)
	if !ok {
		return member, nil
	}
	role, err := models.RoleTypeFromString(roleStr)
	if err != nil {
		return models.Member{}, ErrInvalidInput
	}

	if err := db.DB.Model(&member).Update("role", role).Error; err != nil {
		return models.Member{}, err
	}

	return member, nil
}

func (s *MemberService) DeleteMember(db *database.Database, id string, actorID string) error {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return err
	}

	memberID, err := parseID(id, ErrMemberNotFound)
	if err != nil {
		return err
	}

	var member models.Member
	if err := db.DB.First(&member, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	if err := AccessServiceInstance.Authorize(db, actor, MemberResource, ActionDelete, &member); err != nil {
		return err
	}

	return db.DB.Delete(&member).Error
}

func (s *MemberService) GetMembers(db *database.Database, params map[string]interface{}, actorID string) ([]models.Member, error) {
	actor, err := loadActor(db, actorID)
	if err != nil {
		return nil, err
	}

	space, err := resolveScope(db, params["notespace"])
	if err != nil {
		return nil, err
	}

	if err := AccessServiceInstance.Authorize(db, actor, MemberResource, ActionList, &space); err != nil {
		return nil, err
	}

	query := db.DB.Where("notespace_id = ?", space.ID)
	if roleStr, ok := params["role"].(string); ok && roleStr != "" {
		query = query.Where("role = ?", roleStr)
	}

	var members []models.Member
	if err := query.Order("created_at DESC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Don't initialize here, will be set properly in main.go
var MemberServiceInstance MemberServiceInterface
