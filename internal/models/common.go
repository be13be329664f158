// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Base model with common fields. IDs are generated in Go so every supported driver
// stores them the same way.
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"size:36;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB stores free-form JSON (jsonb on PostgreSQL, json on MySQL, text elsewhere).
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}

	return json.Unmarshal(raw, j)
}

func (JSONB) GormDataType() string {
	return "json"
}

func (JSONB) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "jsonb"
	case "mysql":
		return "json"
	default:
		return "text"
	}
}

// StringList is a list of short labels, stored as text[] on PostgreSQL and as the same
// array literal in a text column on other drivers.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return pq.StringArray(l).Value()
}

func (l *StringList) Scan(value interface{}) error {
	return (*pq.StringArray)(l).Scan(value)
}

func (StringList) GormDataType() string {
	return "text"
}

func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
