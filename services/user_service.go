package services

import (
	"errors"

	"ambernote/database"
	"ambernote/models"

	"gorm.io/gorm"
)

type UserServiceInterface interface {
	Register(db *database.Database, userData map[string]interface{}) (models.User, error)
	GetUserById(db *database.Database, id string) (models.User, error)
	UpdateUser(db *database.Database, id string, updatedData map[string]interface{}) (models.User, error)
	GetUsers(db *database.Database, params map[string]interface{}) ([]models.User, error)
}

type UserService struct {
	authService AuthServiceInterface
}

func NewUserService(authService AuthServiceInterface) *UserService {
	return &UserService{authService: authService}
}

// Register creates a new user account. The first account ever created
// is promoted to staff+superuser inside the same transaction, so a
// fresh deployment always has exactly one bootstrap admin.
func (s *UserService) Register(db *database.Database, userData map[string]interface{}) (models.User, error) {
	email, ok := userData["email"].(string)
	if !ok || email == "" {
		return models.User{}, ErrInvalidInput
	}
	password, ok := userData["password"].(string)
	if !ok || password == "" {
		return models.User{}, ErrInvalidInput
	}
	fullname, ok := userData["fullname"].(string)
	if !ok || fullname == "" {
		return models.User{}, ErrInvalidInput
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	var existing int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}
	if existing > 0 {
		tx.Rollback()
		return models.User{}, ErrEmailExists
	}

	var total int64
	if err := tx.Model(&models.User{}).Count(&total).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Fullname:     fullname,
		IsStaff:      total == 0,
		IsSuperuser:  total == 0,
		Extras:       models.JSONMap{},
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	return user, nil
}

func (s *UserService) GetUserById(db *database.Database, id string) (models.User, error) {
	userID, err := parseID(id, ErrUserNotFound)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateUser changes the mutable profile fields. Email, flags and the
// password hash are not writable through this path; account deletion is
// unsupported entirely.
func (s *UserService) UpdateUser(db *database.Database, id string, updatedData map[string]interface{}) (models.User, error) {
	userID, err := parseID(id, ErrUserNotFound)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	changes := map[string]interface{}{}
	if fullname, ok := updatedData["fullname"].(string); ok && fullname != "" {
		changes["fullname"] = fullname
	}
	if extras, ok := updatedData["extras"].(map[string]interface{}); ok {
		changes["extras"] = models.JSONMap(extras)
	}

	if len(changes) == 0 {
		return user, nil
	}

	if err := db.DB.Model(&user).Updates(changes).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (s *UserService) GetUsers(db *database.Database, params map[string]interface{}) ([]models.User, error) {
	var users []models.User
	query := db.DB

	if email, ok := params["email"].(string); ok && email != "" {
		query = query.Where("email = ?", email)
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Don't initialize here, will be set properly in main.go
var UserServiceInstance UserServiceInterface
