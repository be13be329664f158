// internal/services/playlist_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/database"
	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
)

type PlaylistService struct {
	db *gorm.DB
}

type PlaylistInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// PlaylistView adds the derived duration figures to a playlist. Hours and Minutes let the HTTP
// layer render a localized duration.
type PlaylistView struct {
	models.Playlist
	TrackCount      int    `json:"tracks_count"`
	TotalSeconds    int64  `json:"total_seconds"`
	Hours           int    `json:"hours"`
	Minutes         int    `json:"minutes"`
	DurationDisplay string `json:"duration_display"`
}

func NewPlaylistService(db *gorm.DB) *PlaylistService {
	return &PlaylistService{db: db}
}

func NewPlaylistView(p models.Playlist) PlaylistView {
	seconds := make([]*int, len(p.Tracks))
	for i := range p.Tracks {
		seconds[i] = p.Tracks[i].DurationSeconds
	}
	total := domain.TotalDuration(seconds)
	hours, minutes := domain.SplitHoursMinutes(total)

	return PlaylistView{
		Playlist:        p,
		TrackCount:      len(p.Tracks),
		TotalSeconds:    int64(total.Seconds()),
		Hours:           hours,
		Minutes:         minutes,
		DurationDisplay: domain.FormatPlaylistDuration(total),
	}
}

func withOrderedTracks(db *gorm.DB) *gorm.DB {
	return db.Preload("Tracks", func(db *gorm.DB) *gorm.DB {
		return db.Order("tracks.title ASC")
	}).Preload("Tracks.Album.Artist")
}

func (s *PlaylistService) List(ctx context.Context, userID uuid.UUID) ([]PlaylistView, error) {
	var playlists []models.Playlist
	if err := withOrderedTracks(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&playlists).Error; err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	views := make([]PlaylistView, len(playlists))
	for i := range playlists {
		views[i] = NewPlaylistView(playlists[i])
	}
	return views, nil
}

func (s *PlaylistService) owned(ctx context.Context, db *gorm.DB, userID, playlistID uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := db.WithContext(ctx).Where("id = ? AND user_id = ?", playlistID, userID).First(&playlist).Error; err != nil {
		return nil, lookupError(err, "playlist")
	}
	return &playlist, nil
}

// Get returns an owned playlist; someone else's playlist is reported as not found.
func (s *PlaylistService) Get(ctx context.Context, userID, playlistID uuid.UUID) (*PlaylistView, error) {
	var playlist models.Playlist
	if err := withOrderedTracks(s.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", playlistID, userID).
		First(&playlist).Error; err != nil {
		return nil, lookupError(err, "playlist")
	}
	view := NewPlaylistView(playlist)
	return &view, nil
}

func (s *PlaylistService) Create(ctx context.Context, userID uuid.UUID, input *PlaylistInput) (*PlaylistView, error) {
	playlist := &models.Playlist{
		Name:        strings.TrimSpace(input.Name),
		UserID:      userID,
		Description: input.Description,
	}
	if playlist.Name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	if err := s.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	view := NewPlaylistView(*playlist)
	return &view, nil
}

func (s *PlaylistService) Update(ctx context.Context, userID, playlistID uuid.UUID, input *PlaylistInput) (*PlaylistView, error) {
	playlist, err := s.owned(ctx, s.db, userID, playlistID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}

	if err := s.db.WithContext(ctx).Model(playlist).Updates(map[string]interface{}{
		"name":        name,
		"description": input.Description,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	return s.Get(ctx, userID, playlistID)
}

func (s *PlaylistService) Delete(ctx context.Context, userID, playlistID uuid.UUID) error {
	return database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		playlist, err := s.owned(ctx, tx, userID, playlistID)
		if err != nil {
			return err
		}
		if err := tx.Model(playlist).Association("Tracks").Clear(); err != nil {
			return fmt.Errorf("failed to clear playlist tracks: %w", err)
		}
		if err := tx.Delete(playlist).Error; err != nil {
			return fmt.Errorf("failed to delete playlist: %w", err)
		}
		return nil
	})
}

// AddTrack puts a track on an owned playlist. added is false when the track was already there.
func (s *PlaylistService) AddTrack(ctx context.Context, userID, playlistID, trackID uuid.UUID) (added bool, playlist *models.Playlist, err error) {
	err = database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		p, err := s.owned(ctx, tx, userID, playlistID)
		if err != nil {
			return err
		}
		playlist = p

		var track models.Track
		if err := tx.Where("id = ?", trackID).First(&track).Error; err != nil {
			return lookupError(err, "track")
		}

		var present int64
		if err := tx.Table("playlist_tracks").
			Where("playlist_id = ? AND track_id = ?", playlistID, trackID).
			Count(&present).Error; err != nil {
			return fmt.Errorf("failed to check playlist membership: %w", err)
		}
		if present > 0 {
			return nil
		}

		if err := tx.Model(p).Association("Tracks").Append(&track); err != nil {
			return fmt.Errorf("failed to add track: %w", err)
		}
		added = true
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return added, playlist, nil
}

// RemoveTrack is a no-op when the track is not on the playlist.
func (s *PlaylistService) RemoveTrack(ctx context.Context, userID, playlistID, trackID uuid.UUID) error {
	playlist, err := s.owned(ctx, s.db, userID, playlistID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(playlist).Association("Tracks").Delete(&models.Track{BaseModel: models.BaseModel{ID: trackID}}); err != nil {
		return fmt.Errorf("failed to remove track: %w", err)
	}
	return nil
}
