// internal/services/beat_service.go
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
	"github.com/musichub/musichub-backend/internal/utils"
)

const maxBeatTags = 10

type BeatService struct {
	db *gorm.DB
}

type BeatInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	GenreID     *uuid.UUID `json:"genre_id,omitempty"`
	BPM         int        `json:"bpm" validate:"omitempty,gte=20,lte=400"`
	MusicalKey  string     `json:"musical_key,omitempty" validate:"omitempty,max=10"`
	Price       float64    `json:"price" validate:"gte=0"`
	Tags        []string   `json:"tags,omitempty" validate:"omitempty,max=10,dive,max=30"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=5000"`
	IsAvailable *bool      `json:"is_available,omitempty"`
}

type BeatFilter struct {
	ProducerID *uuid.UUID
	GenreID    *uuid.UUID
	Tag        string
	// OnlyAvailable hides beats the producer has taken off the market.
	OnlyAvailable bool
}

func NewBeatService(db *gorm.DB) *BeatService {
	return &BeatService{db: db}
}

// normalizeTags lowercases, trims and de-duplicates tags, keeping their order.
func normalizeTags(tags []string) models.StringList {
	seen := make(map[string]bool, len(tags))
	out := make(models.StringList, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func (s *BeatService) checkInput(ctx context.Context, input *BeatInput) error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(input.Title) == "" {
		verr.Add("title", "title is required")
	}
	if input.Price < 0 {
		verr.Add("price", "price must not be negative")
	}
	if len(normalizeTags(input.Tags)) > maxBeatTags {
		verr.Add("tags", fmt.Sprintf("at most %d tags are allowed", maxBeatTags))
	}
	if input.GenreID != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Genre{}).Where("id = ?", *input.GenreID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check genre: %w", err)
		}
		if count == 0 {
			verr.Add("genre_id", "unknown genre")
		}
	}
	return verr.OrNil()
}

func (s *BeatService) List(ctx context.Context, filter BeatFilter, params utils.PaginationParams) ([]models.Beat, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Beat{})
	if filter.ProducerID != nil {
		query = query.Where("producer_id = ?", *filter.ProducerID)
	}
	if filter.GenreID != nil {
		query = query.Where("genre_id = ?", *filter.GenreID)
	}
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if tag := strings.ToLower(strings.TrimSpace(filter.Tag)); tag != "" {
		query = s.whereTag(query, tag)
	}
	if params.Search != "" {
		pattern := likePattern(params.Search)
		query = query.Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count beats: %w", err)
	}

	var beats []models.Beat
	query = utils.ApplySort(query, params, []string{"created_at", "title", "price", "bpm"}, "created_at")
	if err := utils.ApplyPagination(query, params).
		Preload("Producer").Preload("Genre").
		Find(&beats).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list beats: %w", err)
	}
	return beats, total, nil
}

// whereTag matches an exact tag. PostgreSQL stores tags as text[]; other drivers keep the array
// literal, where every element is double-quoted.
func (s *BeatService) whereTag(query *gorm.DB, tag string) *gorm.DB {
	if s.db.Dialector.Name() == "postgres" {
		return query.Where("? = ANY(tags)", tag)
	}
	return query.Where("tags LIKE ? ESCAPE '!'", `%"`+escapeLike(tag)+`"%`)
}

func (s *BeatService) Get(ctx context.Context, beatID uuid.UUID) (*models.Beat, error) {
	var beat models.Beat
	if err := s.db.WithContext(ctx).
		Preload("Producer").Preload("Genre").
		Where("id = ?", beatID).
		First(&beat).Error; err != nil {
		return nil, lookupError(err, "beat")
	}
	return &beat, nil
}

func (s *BeatService) owned(ctx context.Context, db *gorm.DB, producerID, beatID uuid.UUID) (*models.Beat, error) {
	var beat models.Beat
	if err := db.WithContext(ctx).Where("id = ? AND producer_id = ?", beatID, producerID).First(&beat).Error; err != nil {
		return nil, lookupError(err, "beat")
	}
	return &beat, nil
}

func (s *BeatService) Create(ctx context.Context, producerID uuid.UUID, input *BeatInput) (*models.Beat, error) {
	if err := s.checkInput(ctx, input); err != nil {
		return nil, err
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}
	beat := &models.Beat{
		ProducerID:  producerID,
		Title:       strings.TrimSpace(input.Title),
		GenreID:     input.GenreID,
		BPM:         input.BPM,
		MusicalKey:  input.MusicalKey,
		Price:       input.Price,
		Tags:        normalizeTags(input.Tags),
		Description: input.Description,
		IsAvailable: available,
	}
	if err := s.db.WithContext(ctx).Create(beat).Error; err != nil {
		return nil, fmt.Errorf("failed to create beat: %w", err)
	}
	return beat, nil
}

func (s *BeatService) Update(ctx context.Context, producerID, beatID uuid.UUID, input *BeatInput) (*models.Beat, error) {
	beat, err := s.owned(ctx, s.db, producerID, beatID)
	if err != nil {
		return nil, err
	}
	if err := s.checkInput(ctx, input); err != nil {
		return nil, err
	}

	beat.Title = strings.TrimSpace(input.Title)
	beat.GenreID = input.GenreID
	beat.BPM = input.BPM
	beat.MusicalKey = input.MusicalKey
	beat.Price = input.Price
	beat.Tags = normalizeTags(input.Tags)
	beat.Description = input.Description
	if input.IsAvailable != nil {
		beat.IsAvailable = *input.IsAvailable
	}

	if err := s.db.WithContext(ctx).Save(beat).Error; err != nil {
		return nil, fmt.Errorf("failed to update beat: %w", err)
	}
	return beat, nil
}

func (s *BeatService) SetArtwork(ctx context.Context, producerID, beatID uuid.UUID, url string) (*models.Beat, error) {
	beat, err := s.owned(ctx, s.db, producerID, beatID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(beat).Update("artwork_url", url).Error; err != nil {
		return nil, fmt.Errorf("failed to update artwork: %w", err)
	}
	beat.ArtworkURL = url
	return beat, nil
}

// Delete removes the beat; collaborations built on it keep going without one.
func (s *BeatService) Delete(ctx context.Context, producerID, beatID uuid.UUID) error {
	return database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		beat, err := s.owned(ctx, tx, producerID, beatID)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Collaboration{}).
			Where("beat_id = ?", beat.ID).
			Update("beat_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach collaborations: %w", err)
		}
		if err := tx.Delete(beat).Error; err != nil {
			return fmt.Errorf("failed to delete beat: %w", err)
		}
		return nil
	})
}
