package routes

import (
	"net/http"

	"ambernote/database"
	"ambernote/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegisterUserRoutes(group *gin.RouterGroup, db *database.Database, userService services.UserServiceInterface) {
	group.GET("/users", func(c *gin.Context) { GetUsers(c, db, userService) })
	group.GET("/users/me", func(c *gin.Context) { GetCurrentUser(c, db, userService) })

	group.GET("/users/:id", func(c *gin.Context) { GetUserById(c, db, userService) })
	group.PUT("/users/:id", func(c *gin.Context) { UpdateUser(c, db, userService) })
	// No DELETE: user accounts cannot be removed through this API.
}

// authorizeUserAccess runs the self-or-admin rule for user resources.
func authorizeUserAccess(c *gin.Context, db *database.Database, actor string, action services.AccessAction, targetID string) bool {
	actorUser, err := services.AccessServiceInstance.GetActor(db, uuid.MustParse(actor))
	if err != nil {
		handleServiceError(c, err)
		return false
	}

	targetUUID, err := uuid.Parse(targetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrUserNotFound.Error()})
		return false
	}

	if err := services.AccessServiceInstance.AuthorizeUser(actorUser, action, targetUUID); err != nil {
		handleServiceError(c, err)
		return false
	}

	return true
}

func GetCurrentUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	user, err := userService.GetUserById(db, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func GetUserById(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if !authorizeUserAccess(c, db, actor, services.ActionRead, id) {
		return
	}

	user, err := userService.GetUserById(db, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func UpdateUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if !authorizeUserAccess(c, db, actor, services.ActionUpdate, id) {
		return
	}

	var userData map[string]interface{}
	if err := c.ShouldBindJSON(&userData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updatedUser, err := userService.UpdateUser(db, id, userData)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updatedUser)
}

func GetUsers(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	actorUser, err := services.AccessServiceInstance.GetActor(db, uuid.MustParse(actor))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if err := services.AccessServiceInstance.AuthorizeUser(actorUser, services.ActionList, uuid.Nil); err != nil {
		handleServiceError(c, err)
		return
	}

	params := make(map[string]interface{})
	if email := c.Query("email"); email != "" {
		params["email"] = email
	}

	users, err := userService.GetUsers(db, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
