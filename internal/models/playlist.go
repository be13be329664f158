// internal/models/playlist.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Playlist struct {
	BaseModel
	Name        string    `json:"name" gorm:"size:200;not null"`
	UserID      uuid.UUID `json:"user_id" gorm:"size:36;not null;index"`
	Description string    `json:"description,omitempty" gorm:"type:text"`

	// Relationships
	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tracks []Track `json:"tracks,omitempty" gorm:"many2many:playlist_tracks;constraint:OnDelete:CASCADE"`
}

// Favorite rows are hard-deleted so the (user, track) pair stays unique.
type Favorite struct {
	ID        uuid.UUID `json:"id" gorm:"size:36;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_favorites_user_track"`
	TrackID   uuid.UUID `json:"track_id" gorm:"size:36;not null;uniqueIndex:idx_favorites_user_track;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User  *User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Track *Track `json:"track,omitempty" gorm:"foreignKey:TrackID;constraint:OnDelete:CASCADE"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
