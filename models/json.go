package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap stores opaque structured data in a jsonb column. Note content
// and the extras field of every model use it; the core never interprets
// the keys.
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface for JSONB storage
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for JSONB retrieval
func (m *JSONMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = make(JSONMap)
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for JSONMap")
	}
}
