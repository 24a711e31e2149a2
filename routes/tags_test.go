package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ambernote/database"
	"ambernote/models"
	"ambernote/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type mockTagService struct {
	tag  models.Tag
	tags []models.Tag
	err  error
}

func (m *mockTagService) CreateTag(db *database.Database, tagData map[string]interface{}, actorID string) (models.Tag, error) {
	return m.tag, m.err
}

func (m *mockTagService) GetTagById(db *database.Database, id string, actorID string) (models.Tag, error) {
	return m.tag, m.err
}

func (m *mockTagService) UpdateTag(db *database.Database, id string, updatedData map[string]interface{}, actorID string) (models.Tag, error) {
	return m.tag, m.err
}

func (m *mockTagService) DeleteTag(db *database.Database, id string, actorID string) error {
	return m.err
}

func (m *mockTagService) GetTags(db *database.Database, params map[string]interface{}, actorID string) ([]models.Tag, error) {
	return m.tags, m.err
}

func setupTagRouter(service services.TagServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", uuid.New())
	})
	RegisterTagRoutes(router.Group(""), &database.Database{}, service)
	return router
}

func TestCreateTagRoute(t *testing.T) {
	tag := models.Tag{ID: uuid.New(), Name: "urgent"}
	router := setupTagRouter(&mockTagService{tag: tag})

	w := httptest.NewRecorder()
	body := `{"notespace":"` + uuid.New().String() + `","name":"urgent"}`
	req, _ := http.NewRequest("POST", "/tags", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "urgent")
}

func TestCreateTagConflict(t *testing.T) {
	router := setupTagRouter(&mockTagService{err: services.ErrTagExists})

	w := httptest.NewRecorder()
	body := `{"notespace":"` + uuid.New().String() + `","name":"dup"}`
	req, _ := http.NewRequest("POST", "/tags", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetTagsMissingScope(t *testing.T) {
	router := setupTagRouter(&mockTagService{err: services.ErrNotespaceRequired})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/tags", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTagRoute(t *testing.T) {
	router := setupTagRouter(&mockTagService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/tags/"+uuid.New().String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
