// internal/models/catalog.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/domain"
)

type Genre struct {
	BaseModel
	Name        string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}

type Album struct {
	BaseModel
	Title       string     `json:"title" gorm:"size:200;not null"`
	ArtistID    uuid.UUID  `json:"artist_id" gorm:"size:36;not null;index"`
	ReleaseDate time.Time  `json:"release_date" gorm:"type:date;not null"`
	GenreID     *uuid.UUID `json:"genre_id" gorm:"size:36;index"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	CoverURL    string     `json:"cover_url,omitempty" gorm:"size:500"`

	// Relationships
	Artist *User   `json:"artist,omitempty" gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE"`
	Genre  *Genre  `json:"genre,omitempty" gorm:"foreignKey:GenreID;constraint:OnDelete:SET NULL"`
	Tracks []Track `json:"tracks,omitempty" gorm:"foreignKey:AlbumID"`

	TrackCount int64 `json:"tracks_count" gorm:"-"`
}

type Track struct {
	BaseModel
	Title           string    `json:"title" gorm:"size:200;not null"`
	AlbumID         uuid.UUID `json:"album_id" gorm:"size:36;not null;uniqueIndex:idx_tracks_album_number"`
	DurationSeconds *int      `json:"duration_seconds"`
	TrackNumber     int       `json:"track_number" gorm:"not null;uniqueIndex:idx_tracks_album_number"`

	// Relationships
	Album *Album `json:"album,omitempty" gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE"`

	DurationDisplay string `json:"duration_display" gorm:"-"`
}

func (t *Track) AfterFind(tx *gorm.DB) error {
	t.DurationDisplay = domain.FormatTrackDuration(t.DurationSeconds)
	return nil
}

func (t *Track) AfterSave(tx *gorm.DB) error {
	t.DurationDisplay = domain.FormatTrackDuration(t.DurationSeconds)
	return nil
}
