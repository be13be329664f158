// internal/models/beat.go
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/musichub/musichub-backend/internal/domain"
)

type Beat struct {
	BaseModel
	ProducerID  uuid.UUID  `json:"producer_id" gorm:"size:36;not null;index"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	GenreID     *uuid.UUID `json:"genre_id" gorm:"size:36;index"`
	BPM         int        `json:"bpm"`
	MusicalKey  string     `json:"musical_key,omitempty" gorm:"size:10"`
	Price       float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	Tags        StringList `json:"tags"`
	ArtworkURL  string     `json:"artwork_url,omitempty" gorm:"size:500"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	IsAvailable bool       `json:"is_available" gorm:"not null;index"`

	// Relationships
	Producer *User  `json:"producer,omitempty" gorm:"foreignKey:ProducerID;constraint:OnDelete:CASCADE"`
	Genre    *Genre `json:"genre,omitempty" gorm:"foreignKey:GenreID;constraint:OnDelete:SET NULL"`
}

// Collaboration is a producer/artist project, optionally built on one of the producer's beats.
// Shares are not required to add up to 100.
type Collaboration struct {
	BaseModel
	ProducerID           uuid.UUID                  `json:"producer_id" gorm:"size:36;not null;index"`
	ArtistID             uuid.UUID                  `json:"artist_id" gorm:"size:36;not null;index"`
	BeatID               *uuid.UUID                 `json:"beat_id" gorm:"size:36;index"`
	ProjectName          string                     `json:"project_name" gorm:"size:200;not null"`
	Status               domain.CollaborationStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	ProducerSharePercent float64                    `json:"producer_share_percent" gorm:"type:decimal(5,2);not null"`
	ArtistSharePercent   float64                    `json:"artist_share_percent" gorm:"type:decimal(5,2);not null"`
	Deadline             *time.Time                 `json:"deadline" gorm:"type:date"`
	CompletedDate        *time.Time                 `json:"completed_date" gorm:"type:date"`
	Notes                string                     `json:"notes,omitempty" gorm:"type:text"`

	// Relationships
	Producer *User `json:"producer,omitempty" gorm:"foreignKey:ProducerID;constraint:OnDelete:CASCADE"`
	Artist   *User `json:"artist,omitempty" gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE"`
	Beat     *Beat `json:"beat,omitempty" gorm:"foreignKey:BeatID;constraint:OnDelete:SET NULL"`
}
