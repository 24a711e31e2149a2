package routes

import (
	"net/http"

	"ambernote/database"
	"ambernote/services"

	"github.com/gin-gonic/gin"
)

func RegisterNotespaceRoutes(group *gin.RouterGroup, db *database.Database, notespaceService services.NotespaceServiceInterface) {
	group.GET("/notespaces", func(c *gin.Context) { GetNotespaces(c, db, notespaceService) })
	group.POST("/notespaces", func(c *gin.Context) { CreateNotespace(c, db, notespaceService) })

	group.GET("/notespaces/:id", func(c *gin.Context) { GetNotespaceById(c, db, notespaceService) })
	group.PUT("/notespaces/:id", func(c *gin.Context) { UpdateNotespace(c, db, notespaceService) })
	group.DELETE("/notespaces/:id", func(c *gin.Context) { DeleteNotespace(c, db, notespaceService) })
}

func CreateNotespace(c *gin.Context, db *database.Database, notespaceService services.NotespaceServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var spaceData map[string]interface{}
	if err := c.ShouldBindJSON(&spaceData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	space, err := notespaceService.CreateNotespace(db, spaceData, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, space)
}

func GetNotespaceById(c *gin.Context, db *database.Database, notespaceService services.NotespaceServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	space, err := notespaceService.GetNotespaceById(db, c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, space)
}

func UpdateNotespace(c *gin.Context, db *database.Database, notespaceService services.NotespaceServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var spaceData map[string]interface{}
	if err := c.ShouldBindJSON(&spaceData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	space, err := notespaceService.UpdateNotespace(db, c.Param("id"), spaceData, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, space)
}

func DeleteNotespace(c *gin.Context, db *database.Database, notespaceService services.NotespaceServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	if err := notespaceService.DeleteNotespace(db, c.Param("id"), actor); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

func GetNotespaces(c *gin.Context, db *database.Database, notespaceService services.NotespaceServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	params := make(map[string]interface{})
	if spaceType := c.Query("type"); spaceType != "" {
		params["type"] = spaceType
	}
	if name := c.Query("name"); name != "" {
		params["name"] = name
	}

	spaces, err := notespaceService.GetNotespaces(db, params, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, spaces)
}
