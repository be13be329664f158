// internal/services/collaboration_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/database"
	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
)

type CollaborationService struct {
	db            *gorm.DB
	notifications *NotificationService
	now           Clock
}

// CollaborationInput is written by the producer. Shares are checked one by one; they need not
// add up to 100.
type CollaborationInput struct {
	ArtistID             uuid.UUID                  `json:"artist_id" validate:"required"`
	BeatID               *uuid.UUID                 `json:"beat_id,omitempty"`
	ProjectName          string                     `json:"project_name" validate:"required,max=200"`
	Status               domain.CollaborationStatus `json:"status,omitempty" validate:"omitempty,oneof=pending active recording mixing completed cancelled"`
	ProducerSharePercent float64                    `json:"producer_share_percent" validate:"gte=0,lte=100"`
	ArtistSharePercent   float64                    `json:"artist_share_percent" validate:"gte=0,lte=100"`
	Deadline             *time.Time                 `json:"-"`
	Notes                string                     `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

type CollaborationFilter struct {
	Status domain.CollaborationStatus
	// Overdue keeps only collaborations that are overdue today.
	Overdue bool
}

// CollaborationView is a collaboration as seen by one user on the service clock's date.
type CollaborationView struct {
	models.Collaboration
	IsOverdue bool `json:"is_overdue"`
	ReadOnly  bool `json:"read_only"`
}

func NewCollaborationService(db *gorm.DB, notifications *NotificationService, now Clock) *CollaborationService {
	return &CollaborationService{
		db:            db,
		notifications: notifications,
		now:           clockOrDefault(now),
	}
}

func (s *CollaborationService) view(c models.Collaboration, readOnly bool) CollaborationView {
	return CollaborationView{
		Collaboration: c,
		IsOverdue:     domain.IsCollaborationOverdue(c.Deadline, c.Status, s.now()),
		ReadOnly:      readOnly,
	}
}

func (s *CollaborationService) validate(ctx context.Context, db *gorm.DB, producerID uuid.UUID, input *CollaborationInput) (*models.User, error) {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(input.ProjectName) == "" {
		verr.Add("project_name", "project_name is required")
	}
	if input.Status != "" && !input.Status.Valid() {
		verr.Add("status", fmt.Sprintf("unknown collaboration status %q", input.Status))
	}
	if fe := domain.ValidatePercent("producer_share_percent", input.ProducerSharePercent); fe != nil {
		verr.Fields = append(verr.Fields, *fe)
	}
	if fe := domain.ValidatePercent("artist_share_percent", input.ArtistSharePercent); fe != nil {
		verr.Fields = append(verr.Fields, *fe)
	}

	var artist models.User
	err := db.WithContext(ctx).Where("id = ? AND role = ?", input.ArtistID, domain.RoleArtist).First(&artist).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		verr.Add("artist_id", "artist not found")
	case err != nil:
		return nil, fmt.Errorf("failed to load artist: %w", err)
	}

	if input.BeatID != nil {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Beat{}).
			Where("id = ? AND producer_id = ?", *input.BeatID, producerID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check beat: %w", err)
		}
		if count == 0 {
			verr.Add("beat_id", "beat must be one of your own beats")
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return &artist, nil
}

// apply copies input onto c. An omitted status keeps the stored one, or pending for a new record.
func (s *CollaborationService) apply(c *models.Collaboration, input *CollaborationInput) {
	status := input.Status
	if status == "" {
		status = c.Status
	}
	if status == "" {
		status = domain.CollaborationStatusPending
	}

	c.ArtistID = input.ArtistID
	c.BeatID = input.BeatID
	c.ProjectName = strings.TrimSpace(input.ProjectName)
	c.Status = status
	c.ProducerSharePercent = domain.RoundPercent(input.ProducerSharePercent)
	c.ArtistSharePercent = domain.RoundPercent(input.ArtistSharePercent)
	c.Notes = input.Notes
	c.CompletedDate = domain.CompletedDateFor(status, c.CompletedDate, s.now())
	if input.Deadline != nil {
		d := domain.DateOf(*input.Deadline)
		c.Deadline = &d
	} else {
		c.Deadline = nil
	}
}

func (s *CollaborationService) Create(ctx context.Context, producerID uuid.UUID, input *CollaborationInput) (*CollaborationView, error) {
	collaboration := &models.Collaboration{ProducerID: producerID}
	var delivery *Delivery

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		artist, err := s.validate(ctx, tx, producerID, input)
		if err != nil {
			return err
		}
		var producer models.User
		if err := tx.Where("id = ?", producerID).First(&producer).Error; err != nil {
			return lookupError(err, "producer")
		}

		s.apply(collaboration, input)
		if err := tx.Create(collaboration).Error; err != nil {
			return fmt.Errorf("failed to create collaboration: %w", err)
		}
		if err := s.reload(ctx, tx, collaboration); err != nil {
			return err
		}

		if s.notifications != nil {
			delivery, err = s.notifications.CollaborationInvite(ctx, tx, collaboration, &producer, artist)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		s.notifications.Deliver(delivery)
	}
	view := s.view(*collaboration, false)
	return &view, nil
}

func (s *CollaborationService) owned(ctx context.Context, db *gorm.DB, producerID, collaborationID uuid.UUID) (*models.Collaboration, error) {
	var collaboration models.Collaboration
	if err := db.WithContext(ctx).
		Where("id = ? AND producer_id = ?", collaborationID, producerID).
		First(&collaboration).Error; err != nil {
		return nil, lookupError(err, "collaboration")
	}
	return &collaboration, nil
}

func (s *CollaborationService) Update(ctx context.Context, producerID, collaborationID uuid.UUID, input *CollaborationInput) (*CollaborationView, error) {
	var collaboration *models.Collaboration
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		c, err := s.owned(ctx, tx, producerID, collaborationID)
		if err != nil {
			return err
		}
		if _, err := s.validate(ctx, tx, producerID, input); err != nil {
			return err
		}

		s.apply(c, input)
		if err := tx.Save(c).Error; err != nil {
			return fmt.Errorf("failed to update collaboration: %w", err)
		}
		collaboration = c
		return s.reload(ctx, tx, c)
	})
	if err != nil {
		return nil, err
	}

	view := s.view(*collaboration, false)
	return &view, nil
}

func withParticipants(db *gorm.DB) *gorm.DB {
	return db.Preload("Producer").Preload("Artist").Preload("Beat")
}

// reload refreshes c with its participants so writes answer in the same shape as Get.
func (s *CollaborationService) reload(ctx context.Context, db *gorm.DB, c *models.Collaboration) error {
	if err := withParticipants(db.WithContext(ctx)).Where("id = ?", c.ID).First(c).Error; err != nil {
		return lookupError(err, "collaboration")
	}
	return nil
}

// Get returns a collaboration the user takes part in. The artist's copy is read-only.
func (s *CollaborationService) Get(ctx context.Context, userID, collaborationID uuid.UUID) (*CollaborationView, error) {
	var collaboration models.Collaboration
	if err := withParticipants(s.db.WithContext(ctx)).
		Where("id = ? AND (producer_id = ? OR artist_id = ?)", collaborationID, userID, userID).
		First(&collaboration).Error; err != nil {
		return nil, lookupError(err, "collaboration")
	}
	view := s.view(collaboration, collaboration.ProducerID != userID)
	return &view, nil
}

// List returns the producer's own collaborations, or for an artist the ones they were invited to.
func (s *CollaborationService) List(ctx context.Context, userID uuid.UUID, role domain.Role, filter CollaborationFilter) ([]CollaborationView, error) {
	query := withParticipants(s.db.WithContext(ctx))
	readOnly := false
	switch {
	case role.Can(domain.CapManageCollaborations):
		query = query.Where("producer_id = ?", userID)
	case role.Can(domain.CapViewCollaborations):
		query = query.Where("artist_id = ?", userID)
		readOnly = true
	default:
		return nil, domain.ErrForbidden
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var collaborations []models.Collaboration
	if err := query.Order("created_at DESC").Find(&collaborations).Error; err != nil {
		return nil, fmt.Errorf("failed to list collaborations: %w", err)
	}

	views := make([]CollaborationView, 0, len(collaborations))
	for i := range collaborations {
		view := s.view(collaborations[i], readOnly)
		if filter.Overdue && !view.IsOverdue {
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *CollaborationService) Delete(ctx context.Context, producerID, collaborationID uuid.UUID) error {
	collaboration, err := s.owned(ctx, s.db, producerID, collaborationID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(collaboration).Error; err != nil {
		return fmt.Errorf("failed to delete collaboration: %w", err)
	}
	return nil
}
