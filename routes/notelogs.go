package routes

import (
	"net/http"

	"ambernote/database"
	"ambernote/services"

	"github.com/gin-gonic/gin"
)

// Note logs are read-only: no create, update or delete route exists.
func RegisterNoteLogRoutes(group *gin.RouterGroup, db *database.Database, noteLogService services.NoteLogServiceInterface) {
	group.GET("/notelogs", func(c *gin.Context) { GetNoteLogs(c, db, noteLogService) })
	group.GET("/notelogs/:id", func(c *gin.Context) { GetNoteLogById(c, db, noteLogService) })
}

func GetNoteLogById(c *gin.Context, db *database.Database, noteLogService services.NoteLogServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	noteLog, err := noteLogService.GetNoteLogById(db, c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, noteLog)
}

func GetNoteLogs(c *gin.Context, db *database.Database, noteLogService services.NoteLogServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	params := make(map[string]interface{})
	if note := c.Query("note"); note != "" {
		params["note"] = note
	}
	if action := c.Query("action"); action != "" {
		params["action"] = action
	}

	logs, err := noteLogService.GetNoteLogs(db, params, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
