package routes

import (
	"net/http"

	"ambernote/database"
	"ambernote/services"

	"github.com/gin-gonic/gin"
)

func RegisterMemberRoutes(group *gin.RouterGroup, db *database.Database, memberService services.MemberServiceInterface) {
	group.GET("/members", func(c *gin.Context) { GetMembers(c, db, memberService) })
	group.POST("/members", func(c *gin.Context) { CreateMember(c, db, memberService) })

	group.GET("/members/:id", func(c *gin.Context) { GetMemberById(c, db, memberService) })
	group.PUT("/members/:id", func(c *gin.Context) { UpdateMember(c, db, memberService) })
	group.DELETE("/members/:id", func(c *gin.Context) { DeleteMember(c, db, memberService) })
}

func CreateMember(c *gin.Context, db *database.Database, memberService services.MemberServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var memberData map[string]interface{}
	if err := c.ShouldBindJSON(&memberData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := memberService.CreateMember(db, memberData, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func GetMemberById(c *gin.Context, db *database.Database, memberService services.MemberServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	member, err := memberService.GetMemberById(db, c.Param("id"), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func UpdateMember(c *gin.Context, db *database.Database, memberService services.MemberServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var memberData map[string]interface{}
	if err := c.ShouldBindJSON(&memberData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := memberService.UpdateMember(db, c.Param("id"), memberData, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func DeleteMember(c *gin.Context, db *database.Database, memberService services.MemberServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	if err := memberService.DeleteMember(db, c.Param("id"), actor); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

func GetMembers(c *gin.Context, db *database.Database, memberService services.MemberServiceInterface) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	// The notespace parameter is mandatory; the service rejects its
	// absence before any permission check.
	params := make(map[string]interface{})
	if notespace := c.Query("notespace"); notespace != "" {
		params["notespace"] = notespace
	}
	if role := c.Query("role"); role != "" {
		params["role"] = role
	}

	members, err := memberService.GetMembers(db, params, actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}
