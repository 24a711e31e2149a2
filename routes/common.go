package routes

import (
	"errors"
	"net/http"

	"ambernote/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// actorID returns the authenticated principal's id from the context.
// Writes the 401 response itself when the request is unauthenticated.
func actorID(c *gin.Context) (string, bool) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return "", false
	}

	userID, ok := userIDInterface.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return "", false
	}

	return userID.String(), true
}

// handleServiceError maps the service error taxonomy onto HTTP
// statuses: malformed scoping 400, unresolvable target 404, denial 403,
// uniqueness conflict 409.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotespaceRequired),
		errors.Is(err, services.ErrNoteRequired),
		errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNotespaceNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrNoteNotFound),
		errors.Is(err, services.ErrNoteLogNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailExists),
		errors.Is(err, services.ErrMemberExists),
		errors.Is(err, services.ErrTagExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
