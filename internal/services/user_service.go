// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
)

var ErrUserHasDependents = errors.New("user still manages contracts or runs collaborations")

type UserService struct {
	db *gorm.DB
}

type UpdateUserProfileRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	StageName *string `json:"stage_name,omitempty" validate:"omitempty,max=100"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// PublicProfile is what other users may see about an account.
type PublicProfile struct {
	ID         uuid.UUID   `json:"id"`
	Username   string      `json:"username"`
	StageName  string      `json:"stage_name,omitempty"`
	Bio        string      `json:"bio,omitempty"`
	Role       domain.Role `json:"role"`
	AlbumCount int64       `json:"albums_count"`
	TrackCount int64       `json:"tracks_count"`
	BeatCount  int64       `json:"beats_count"`
	JoinedAt   time.Time   `json:"joined_at"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, lookupError(err, "user")
	}
	return &user, nil
}

func (s *UserService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*PublicProfile, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &PublicProfile{
		ID:        user.ID,
		Username:  user.Username,
		StageName: user.StageName,
		Bio:       user.Bio,
		Role:      user.Role,
		JoinedAt:  user.CreatedAt,
	}

	db := s.db.WithContext(ctx)
	switch user.Role {
	case domain.RoleArtist:
		if err := db.Model(&models.Album{}).Where("artist_id = ?", userID).Count(&profile.AlbumCount).Error; err != nil {
			return nil, fmt.Errorf("failed to count albums: %w", err)
		}
		if err := db.Model(&models.Track{}).
			Joins("JOIN albums ON albums.id = tracks.album_id").
			Where("albums.artist_id = ?", userID).
			Count(&profile.TrackCount).Error; err != nil {
			return nil, fmt.Errorf("failed to count tracks: %w", err)
		}
	case domain.RoleProducer:
		if err := db.Model(&models.Beat{}).Where("producer_id = ?", userID).Count(&profile.BeatCount).Error; err != nil {
			return nil, fmt.Errorf("failed to count beats: %w", err)
		}
	}

	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateUserProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			var taken int64
			if err := s.db.WithContext(ctx).Unscoped().Model(&models.User{}).
				Where("email = ? AND id <> ?", email, userID).
				Count(&taken).Error; err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if taken > 0 {
				return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
			}
			user.Email = email
		}
	}
	if req.StageName != nil {
		user.StageName = strings.TrimSpace(*req.StageName)
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// DeleteAccount soft-deletes the user. Label managers with contracts and producers with
// collaborations must remove those first.
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.CheckPassword(password); err != nil {
		return ErrInvalidCredentials
	}

	db := s.db.WithContext(ctx)
	var contracts, collaborations int64
	if err := db.Model(&models.Contract{}).Where("manager_id = ?", userID).Count(&contracts).Error; err != nil {
		return fmt.Errorf("failed to count contracts: %w", err)
	}
	if err := db.Model(&models.Collaboration{}).Where("producer_id = ?", userID).Count(&collaborations).Error; err != nil {
		return fmt.Errorf("failed to count collaborations: %w", err)
	}
	if contracts > 0 || collaborations > 0 {
		return fmt.Errorf("%w: %w", domain.ErrConflict, ErrUserHasDependents)
	}

	if err := db.Delete(user).Error; err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

// ListArtists returns artists ordered by display name, used by contract and collaboration forms.
func (s *UserService) ListArtists(ctx context.Context) ([]models.User, error) {
	var artists []models.User
	if err := s.db.WithContext(ctx).
		Where("role = ?", domain.RoleArtist).
		Order("username ASC").
		Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, nil
}
