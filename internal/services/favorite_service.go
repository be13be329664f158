// internal/services/favorite_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/database"
	"github.com/musichub/musichub-backend/internal/models"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Toggle flips the favorite state of a track for the user and returns the new state. The unique
// (user_id, track_id) index guarantees at most one row per pair.
func (s *FavoriteService) Toggle(ctx context.Context, userID, trackID uuid.UUID) (bool, error) {
	var favorited bool
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var track models.Track
		if err := tx.Select("id").Where("id = ?", trackID).First(&track).Error; err != nil {
			return lookupError(err, "track")
		}

		var existing models.Favorite
		err := tx.Where("user_id = ? AND track_id = ?", userID, trackID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Where("id = ?", existing.ID).Delete(&models.Favorite{}).Error; err != nil {
				return fmt.Errorf("failed to remove favorite: %w", err)
			}
			favorited = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Favorite{UserID: userID, TrackID: trackID}).Error; err != nil {
				return fmt.Errorf("failed to add favorite: %w", err)
			}
			favorited = true
		default:
			return fmt.Errorf("failed to load favorite: %w", err)
		}
		return nil
	})
	if err != nil {
		// a concurrent toggle created the row first; the pair is favorited either way
		if isUniqueViolation(err) {
			return true, nil
		}
		return false, err
	}
	return favorited, nil
}

func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := s.db.WithContext(ctx).
		Preload("Track.Album.Artist").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// TrackIDs returns the set of the user's favorited track ids.
func (s *FavoriteService) TrackIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("track_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to load favorite ids: %w", err)
	}

	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
