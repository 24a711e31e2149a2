package routes

import (
	"net/http"

	"ambernote/database"
	"ambernote/services"

	"github.com/gin-gonic/gin"
)

func RegisterNoteRoutes(group *gin.RouterGroup, db *database.Database, noteService services.NoteServiceInterface) {
	group.GET("/notes", func(c *gin.Context) { GetNotes(c, db, noteService) })
	group.POST("/notes", func(c *gin.Context) { CreateNote(c, db, noteService) })

	group.GET("/notes/:id", func(c *gin.Context) { GetNoteById(c, db, noteService) })
	group.PUT("/notes/:id", func(c *gin.Context) { UpdateNote(c, db, noteService) })
	group.DELETE("/notes/:id", func(c *gin.Context) { HardDeleteNote(c, db, noteService) })

	// Flag actions: no-body POSTs keyed by note id. Each answers with a
	// success/no-op distinction.
	group.POST("/notes/:id/archive", flagAction(db, noteService, services.FlagArchived, true))
	group.POST("/notes/:id/unarchive", flagAction(db, noteService, services.FlagArchived, false))
	group.POST("/notes/:id/pin", flagAction(db, noteService, services.FlagPinned, true))
	group.POST("/notes/:id/unpin", flagAction(db, noteService, services.FlagPinned, false))
	group.POST("/notes/:id/delete", flagAction(db, noteService, services.FlagDeleted, true))
	group.POST("/notes/:id/restore", flagAction(db, noteService, services.FlagDeleted, false))

	group.POST("/notes/:id/tags/:tagID", func(c *gin.Context) { AttachTag(c, db, noteService) })
	group.DELETE("/notes/:id/tags/:tagID", func(c *gin.Context) { DetachTag(c, db, noteService) })
}

func CreateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var noteData map[string]interface{}
	if err := c.ShouldBindJSON(&noteData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdNote, err := noteService.CreateNote(db, noteData, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdNote)
}

func GetNoteById(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	note, err := noteService.GetNoteById(db, c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func UpdateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var noteData map[string]interface{}
	if err := c.ShouldBindJSON(&noteData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updatedNote, err := noteService.UpdateNote(db, c.Param("id"), noteData, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updatedNote)
}

// HardDeleteNote permanently removes a note and its logs. Members use
// the trash flag action instead; this endpoint is staff-only.
func HardDeleteNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	if err := noteService.HardDeleteNote(db, c.Param("id"), actor); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

func flagAction(db *database.Database, noteService services.NoteServiceInterface, flag services.NoteFlag, value bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorID(c)
		if !ok {
			return
		}

		_, changed, err := noteService.SetNoteFlag(db, c.Param("id"), flag, value, actor)
		if err != nil {
			handleServiceError(c, err)
			return
		}

		if !changed {
			c.JSON(http.StatusAccepted, gin.H{"ok": false, "message": "Value already set, nothing to do"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Success"})
	}
}

func AttachTag(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	_, changed, err := noteService.AttachTag(db, c.Param("id"), c.Param("tagID"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if !changed {
		c.JSON(http.StatusAccepted, gin.H{"ok": false, "message": "Tag already attached, nothing to do"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Success"})
}

func DetachTag(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	_, changed, err := noteService.DetachTag(db, c.Param("id"), c.Param("tagID"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if !changed {
		c.JSON(http.StatusAccepted, gin.H{"ok": false, "message": "Tag not attached, nothing to do"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Success"})
}

func GetNotes(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	params := make(map[string]interface{})
	if notespace := c.Query("notespace"); notespace != "" {
		params["notespace"] = notespace
	}
	if title := c.Query("title"); title != "" {
		params["title"] = title
	}
	if tagID := c.Query("tag"); tagID != "" {
		params["tag"] = tagID
	}
	for _, flag := range []string{"is_archived", "is_pinned", "is_deleted"} {
		if value := c.Query(flag); value == "true" || value == "false" {
			params[flag] = value == "true"
		}
	}

	notes, err := noteService.GetNotes(db, params, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}
