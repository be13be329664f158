// internal/services/contract_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/database"
	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
)

const artistSearchLimit = 20

type ContractService struct {
	db            *gorm.DB
	notifications *NotificationService
	now           Clock
}

// ContractInput is the writable part of a contract. An empty status means pending.
type ContractInput struct {
	ArtistID             uuid.UUID             `json:"artist_id" validate:"required"`
	ContractType         domain.ContractType   `json:"contract_type" validate:"required,oneof=exclusive_release distribution long_term"`
	Status               domain.ContractStatus `json:"status,omitempty" validate:"omitempty,oneof=pending active expiring expired"`
	ArtistRoyaltyPercent float64               `json:"artist_royalty_percent" validate:"gte=0,lte=100"`
	LabelRoyaltyPercent  float64               `json:"label_royalty_percent" validate:"gte=0,lte=100"`
	DurationMonths       int                   `json:"duration_months" validate:"gte=0"`
	StartDate            time.Time             `json:"-"`
	Description          string                `json:"description,omitempty" validate:"omitempty,max=5000"`
	Notes                string                `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

type ContractFilter struct {
	Status domain.ContractStatus
	// Sort is "months_remaining", "-months_remaining" or empty for newest first.
	Sort string
}

// ContractView is a contract as of the service clock.
type ContractView struct {
	models.Contract
	MonthsRemaining int `json:"months_remaining"`
}

type ContractDetail struct {
	ContractView
	ArtistAlbums []models.Album `json:"artist_albums"`
}

// ArtistCandidate is an artist row in the manager's search, with catalogue counts.
type ArtistCandidate struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	StageName   string    `json:"stage_name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	AlbumsCount int64     `json:"albums_count"`
	TracksCount int64     `json:"tracks_count"`
	Contracted  bool      `json:"contracted"`
}

type ArtistSearchResult struct {
	Query               string            `json:"query"`
	Artists             []ArtistCandidate `json:"artists"`
	ContractedArtistIDs []uuid.UUID       `json:"contracted_artist_ids"`
}

func NewContractService(db *gorm.DB, notifications *NotificationService, now Clock) *ContractService {
	return &ContractService{
		db:            db,
		notifications: notifications,
		now:           clockOrDefault(now),
	}
}

func (s *ContractService) view(c models.Contract) ContractView {
	return ContractView{
		Contract:        c,
		MonthsRemaining: domain.MonthsRemaining(c.EndDate, s.now()),
	}
}

func (s *ContractService) loadArtist(ctx context.Context, db *gorm.DB, artistID uuid.UUID) (*models.User, error) {
	var artist models.User
	err := db.WithContext(ctx).Where("id = ? AND role = ?", artistID, domain.RoleArtist).First(&artist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewValidationError("artist_id", "artist not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load artist: %w", err)
	}
	return &artist, nil
}

// applyInput runs the lifecycle rules over input and copies the result onto contract. Nothing is
// written when it fails. An omitted status keeps the stored one, or pending for a new contract.
func (s *ContractService) applyInput(contract *models.Contract, input *ContractInput) error {
	status := input.Status
	if status == "" {
		status = contract.Status
	}
	if status == "" {
		status = domain.ContractStatusPending
	}

	derived, err := domain.ApplyContractTerms(domain.ContractTerms{
		Type:                 input.ContractType,
		Status:               status,
		ArtistRoyaltyPercent: input.ArtistRoyaltyPercent,
		LabelRoyaltyPercent:  input.LabelRoyaltyPercent,
		DurationMonths:       input.DurationMonths,
		StartDate:            input.StartDate,
	}, s.now())
	if err != nil {
		return err
	}

	contract.ArtistID = input.ArtistID
	contract.ContractType = input.ContractType
	contract.Status = derived.Status
	contract.ArtistRoyaltyPercent = domain.RoundPercent(input.ArtistRoyaltyPercent)
	contract.LabelRoyaltyPercent = domain.RoundPercent(input.LabelRoyaltyPercent)
	contract.DurationMonths = input.DurationMonths
	contract.StartDate = derived.StartDate
	contract.EndDate = derived.EndDate
	contract.Description = input.Description
	contract.Notes = strings.TrimSpace(input.Notes)
	return nil
}

func (s *ContractService) Create(ctx context.Context, managerID uuid.UUID, input *ContractInput) (*ContractView, error) {
	contract := &models.Contract{ManagerID: managerID}
	if err := s.applyInput(contract, input); err != nil {
		return nil, err
	}

	var delivery *Delivery
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		artist, err := s.loadArtist(ctx, tx, input.ArtistID)
		if err != nil {
			return err
		}
		var manager models.User
		if err := tx.Where("id = ?", managerID).First(&manager).Error; err != nil {
			return lookupError(err, "manager")
		}

		if err := tx.Create(contract).Error; err != nil {
			return fmt.Errorf("failed to create contract: %w", err)
		}
		contract.Artist = artist

		if s.notifications != nil {
			delivery, err = s.notifications.ContractCreated(ctx, tx, contract, &manager, artist)
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
	view := s.view(*contract)
	return &view, nil
}

func (s *ContractService) owned(ctx context.Context, db *gorm.DB, managerID, contractID uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	if err := db.WithContext(ctx).
		Preload("Artist").
		Where("id = ? AND manager_id = ?", contractID, managerID).
		First(&contract).Error; err != nil {
		return nil, lookupError(err, "contract")
	}
	return &contract, nil
}

// Update re-derives end date and status from the new terms; the artist is notified when the
// stored status changes.
func (s *ContractService) Update(ctx context.Context, managerID, contractID uuid.UUID, input *ContractInput) (*ContractView, error) {
	var (
		contract *models.Contract
		delivery *Delivery
	)
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		c, err := s.owned(ctx, tx, managerID, contractID)
		if err != nil {
			return err
		}
		contract = c
		previous := c.Status

		if err := s.applyInput(c, input); err != nil {
			return err
		}
		artist, err := s.loadArtist(ctx, tx, input.ArtistID)
		if err != nil {
			return err
		}
		c.Artist = nil

		if err := tx.Save(c).Error; err != nil {
			return fmt.Errorf("failed to update contract: %w", err)
		}
		c.Artist = artist

		if previous != c.Status && s.notifications != nil {
			var manager models.User
			if err := tx.Where("id = ?", managerID).First(&manager).Error; err != nil {
				return lookupError(err, "manager")
			}
			delivery, err = s.notifications.ContractStatusChanged(ctx, tx, c, &manager, artist)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if delivery != nil {
		s.notifications.Deliver(delivery)
	}
	view := s.view(*contract)
	return &view, nil
}

// Get returns one of the manager's contracts together with the artist's albums.
func (s *ContractService) Get(ctx context.Context, managerID, contractID uuid.UUID) (*ContractDetail, error) {
	contract, err := s.owned(ctx, s.db, managerID, contractID)
	if err != nil {
		return nil, err
	}

	detail := &ContractDetail{ContractView: s.view(*contract), ArtistAlbums: []models.Album{}}
	if err := s.db.WithContext(ctx).
		Where("artist_id = ?", contract.ArtistID).
		Order("release_date DESC").
		Find(&detail.ArtistAlbums).Error; err != nil {
		return nil, fmt.Errorf("failed to load artist albums: %w", err)
	}
	return detail, nil
}

func (s *ContractService) List(ctx context.Context, managerID uuid.UUID, filter ContractFilter) ([]ContractView, error) {
	query := s.db.WithContext(ctx).Preload("Artist").Where("manager_id = ?", managerID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var contracts []models.Contract
	if err := query.Order("created_at DESC").Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}

	views := make([]ContractView, len(contracts))
	for i := range contracts {
		views[i] = s.view(contracts[i])
	}

	switch filter.Sort {
	case "months_remaining":
		sort.SliceStable(views, func(i, j int) bool { return views[i].MonthsRemaining < views[j].MonthsRemaining })
	case "-months_remaining":
		sort.SliceStable(views, func(i, j int) bool { return views[i].MonthsRemaining > views[j].MonthsRemaining })
	}
	return views, nil
}

func (s *ContractService) Delete(ctx context.Context, managerID, contractID uuid.UUID) error {
	contract, err := s.owned(ctx, s.db, managerID, contractID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(contract).Error; err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	return nil
}

// ArtistSearch lists up to twenty artists matching q (all artists when q is empty) and flags
// those the manager already holds an active or expiring contract with.
func (s *ContractService) ArtistSearch(ctx context.Context, managerID uuid.UUID, q string) (*ArtistSearchResult, error) {
	db := s.db.WithContext(ctx)
	result := &ArtistSearchResult{
		Query:               strings.TrimSpace(q),
		Artists:             []ArtistCandidate{},
		ContractedArtistIDs: []uuid.UUID{},
	}

	if err := db.Model(&models.Contract{}).
		Distinct("artist_id").
		Where("manager_id = ? AND status IN ?", managerID,
			[]domain.ContractStatus{domain.ContractStatusActive, domain.ContractStatusExpiring}).
		Pluck("artist_id", &result.ContractedArtistIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to load contracted artists: %w", err)
	}
	contracted := make(map[uuid.UUID]bool, len(result.ContractedArtistIDs))
	for _, id := range result.ContractedArtistIDs {
		contracted[id] = true
	}

	query := db.Model(&models.User{}).
		Select(`users.id, users.username, users.stage_name, users.bio,
			COUNT(DISTINCT albums.id) AS albums_count,
			COUNT(tracks.id) AS tracks_count`).
		Joins("LEFT JOIN albums ON albums.artist_id = users.id").
		Joins("LEFT JOIN tracks ON tracks.album_id = albums.id").
		Where("users.role = ?", domain.RoleArtist)
	if result.Query != "" {
		pattern := likePattern(result.Query)
		query = query.Where("LOWER(users.username) LIKE ? ESCAPE '!' OR LOWER(users.stage_name) LIKE ? ESCAPE '!' OR LOWER(users.bio) LIKE ? ESCAPE '!'",
			pattern, pattern, pattern)
	}

	if err := query.
		Group("users.id, users.username, users.stage_name, users.bio").
		Order("users.username ASC").
		Limit(artistSearchLimit).
		Scan(&result.Artists).Error; err != nil {
		return nil, fmt.Errorf("failed to search artists: %w", err)
	}

	for i := range result.Artists {
		result.Artists[i].Contracted = contracted[result.Artists[i].ID]
	}
	return result, nil
}
