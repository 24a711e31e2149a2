package services

import (
	"errors"

	"ambernote/database"
	"ambernote/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// resolveScope enforces the scoping contract shared by every
// collection read and scoped create: the request must name its note
// space explicitly. A missing identifier is a malformed request, an
// unresolvable one is not-found; both surface before any permission
// check. Authorization against the returned space is the caller's
// second phase.
// parseID converts an external identifier into a UUID. Identifiers
// arrive as raw path strings; one that is not a UUID can never match a
// row, so it reports the caller's not-found sentinel instead of leaking
// a driver error from the uuid column comparison.
func parseID(id string, notFound error) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, notFound
	}
	return parsed, nil
}

func resolveScope(db *database.Database, spaceIDValue interface{}) (models.NoteSpace, error) {
	spaceIDStr, ok := spaceIDValue.(string)
	if !ok || spaceIDStr == "" {
		return models.NoteSpace{}, ErrNotespaceRequired
	}

	spaceID, err := uuid.Parse(spaceIDStr)
	if err != nil {
		return models.NoteSpace{}, ErrNotespaceNotFound
	}

	var space models.NoteSpace
	if err := db.DB.First(&space, "id = ?", spaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NoteSpace{}, ErrNotespaceNotFound
		}
		return models.NoteSpace{}, err
	}

	return space, nil
}
