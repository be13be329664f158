// internal/models/audit.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"size:36;index"`
	Action       string     `json:"action" gorm:"size:100;not null;index"`
	ResourceType string     `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   *uuid.UUID `json:"resource_id" gorm:"size:36;index"`
	NewValues    JSONB      `json:"new_values"`
	Status       int        `json:"status"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"type:text"`
}

type Notification struct {
	BaseModel
	RecipientID         uuid.UUID  `json:"recipient_id" gorm:"size:36;not null;index"`
	Type                string     `json:"type" gorm:"type:varchar(50);not null;index"`
	Title               string     `json:"title" gorm:"size:255;not null"`
	Message             string     `json:"message" gorm:"type:text;not null"`
	RelatedResourceType string     `json:"related_resource_type,omitempty" gorm:"size:50"`
	RelatedResourceID   *uuid.UUID `json:"related_resource_id" gorm:"size:36"`
	ReadAt              *time.Time `json:"read_at"`
}
