package routes

import (
	"net/http"

	"ambernote/database"
	"ambernote/services"

	"github.com/gin-gonic/gin"
)

func RegisterTagRoutes(group *gin.RouterGroup, db *database.Database, tagService services.TagServiceInterface) {
	group.GET("/tags", func(c *gin.Context) { GetTags(c, db, tagService) })
	group.POST("/tags", func(c *gin.Context) { CreateTag(c, db, tagService) })

	group.GET("/tags/:id", func(c *gin.Context) { GetTagById(c, db, tagService) })
	group.PUT("/tags/:id", func(c *gin.Context) { UpdateTag(c, db, tagService) })
	group.DELETE("/tags/:id", func(c *gin.Context) { DeleteTag(c, db, tagService) })
}

func CreateTag(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var tagData map[string]interface{}
	if err := c.ShouldBindJSON(&tagData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := tagService.CreateTag(db, tagData, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func GetTagById(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	tag, err := tagService.GetTagById(db, c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func UpdateTag(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var tagData map[string]interface{}
	if err := c.ShouldBindJSON(&tagData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := tagService.UpdateTag(db, c.Param("id"), tagData, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func DeleteTag(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	if err := tagService.DeleteTag(db, c.Param("id"), actor); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

func GetTags(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	params := make(map[string]interface{})
	if notespace := c.Query("notespace"); notespace != "" {
		params["notespace"] = notespace
	}
	if name := c.Query("name"); name != "" {
		params["name"] = name
	}

	tags, err := tagService.GetTags(db, params, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}
