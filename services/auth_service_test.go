package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	db := setupServiceTest(t)
	authService := NewAuthService("test-secret", 1)
	userService := NewUserService(authService)

	user, err := userService.Register(db, map[string]interface{}{
		"email":    "user@example.com",
		"password": "password123",
		"fullname": "User",
	})
	require.NoError(t, err)

	tokenString, err := authService.Login(db, "user@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := authService.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupServiceTest(t)
	authService := NewAuthService("test-secret", 1)
	userService := NewUserService(authService)

	_, err := userService.Register(db, map[string]interface{}{
		"email":    "user@example.com",
		"password": "password123",
		"fullname": "User",
	})
	require.NoError(t, err)

	_, err = authService.Login(db, "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = authService.Login(db, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	db := setupServiceTest(t)
	authService := NewAuthService("test-secret", 1)
	userService := NewUserService(authService)

	_, err := userService.Register(db, map[string]interface{}{
		"email":    "user@example.com",
		"password": "password123",
		"fullname": "User",
	})
	require.NoError(t, err)

	tokenString, err := authService.Login(db, "user@example.com", "password123")
	require.NoError(t, err)

	otherService := NewAuthService("different-secret", 1)
	_, err = otherService.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	service := NewAuthService("test-secret", 1)

	hash, err := service.HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, service.ComparePasswords(hash, "password123"))
	assert.Error(t, service.ComparePasswords(hash, "other"))
}
