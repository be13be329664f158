// internal/services/catalog_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/database"
	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
	"github.com/musichub/musichub-backend/internal/utils"
)

const (
	searchAlbumLimit  = 10
	searchTrackLimit  = 20
	searchArtistLimit = 10
)

type CatalogService struct {
	db *gorm.DB
}

type AlbumInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	ReleaseDate time.Time  `json:"-"`
	GenreID     *uuid.UUID `json:"genre_id,omitempty"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=5000"`
}

// TrackInput carries the duration as separate minute and second fields.
type TrackInput struct {
	Title           string `json:"title" validate:"required,max=200"`
	TrackNumber     int    `json:"track_number" validate:"required,gt=0"`
	DurationMinutes *int   `json:"duration_minutes,omitempty" validate:"omitempty,gte=0,lte=999"`
	DurationSeconds *int   `json:"duration_seconds,omitempty" validate:"omitempty,gte=0,lte=59"`
}

type AlbumFilter struct {
	ArtistID *uuid.UUID
	GenreID  *uuid.UUID
	Search   string
}

type SearchResult struct {
	Query   string         `json:"query"`
	Albums  []models.Album `json:"albums"`
	Tracks  []models.Track `json:"tracks"`
	Artists []models.User  `json:"artists"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *CatalogService) ListAlbums(ctx context.Context, filter AlbumFilter, params utils.PaginationParams) ([]models.Album, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Album{})
	if filter.ArtistID != nil {
		query = query.Where("artist_id = ?", *filter.ArtistID)
	}
	if filter.GenreID != nil {
		query = query.Where("genre_id = ?", *filter.GenreID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count albums: %w", err)
	}

	var albums []models.Album
	query = utils.ApplySort(query, params, []string{"created_at", "release_date", "title"}, "created_at")
	if err := utils.ApplyPagination(query, params).
		Preload("Artist").Preload("Genre").
		Find(&albums).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list albums: %w", err)
	}

	if err := s.attachTrackCounts(ctx, albums); err != nil {
		return nil, 0, err
	}
	return albums, total, nil
}

func (s *CatalogService) attachTrackCounts(ctx context.Context, albums []models.Album) error {
	if len(albums) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(albums))
	for i := range albums {
		ids[i] = albums[i].ID
	}

	var rows []struct {
		AlbumID uuid.UUID
		Count   int64
	}
	if err := s.db.WithContext(ctx).Model(&models.Track{}).
		Select("album_id, COUNT(*) AS count").
		Where("album_id IN ?", ids).
		Group("album_id").
		Scan(&rows).Error; err != nil {
		return fmt.Errorf("failed to count tracks: %w", err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.AlbumID] = r.Count
	}
	for i := range albums {
		albums[i].TrackCount = counts[albums[i].ID]
	}
	return nil
}

// GetAlbum returns an album with its tracks in track-number order.
func (s *CatalogService) GetAlbum(ctx context.Context, albumID uuid.UUID) (*models.Album, error) {
	var album models.Album
	if err := s.db.WithContext(ctx).
		Preload("Artist").Preload("Genre").
		Preload("Tracks", func(db *gorm.DB) *gorm.DB { return db.Order("track_number ASC") }).
		Where("id = ?", albumID).
		First(&album).Error; err != nil {
		return nil, lookupError(err, "album")
	}
	album.TrackCount = int64(len(album.Tracks))
	return &album, nil
}

func (s *CatalogService) ownedAlbum(ctx context.Context, db *gorm.DB, artistID, albumID uuid.UUID) (*models.Album, error) {
	var album models.Album
	if err := db.WithContext(ctx).Where("id = ? AND artist_id = ?", albumID, artistID).First(&album).Error; err != nil {
		return nil, lookupError(err, "album")
	}
	return &album, nil
}

func (s *CatalogService) checkGenre(ctx context.Context, genreID *uuid.UUID) error {
	if genreID == nil {
		return nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Genre{}).Where("id = ?", *genreID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check genre: %w", err)
	}
	if count == 0 {
		return domain.NewValidationError("genre_id", "unknown genre")
	}
	return nil
}

func (s *CatalogService) CreateAlbum(ctx context.Context, artistID uuid.UUID, input *AlbumInput) (*models.Album, error) {
	if input.ReleaseDate.IsZero() {
		return nil, domain.NewValidationError("release_date", "release_date is required")
	}
	if err := s.checkGenre(ctx, input.GenreID); err != nil {
		return nil, err
	}

	album := &models.Album{
		Title:       strings.TrimSpace(input.Title),
		ArtistID:    artistID,
		ReleaseDate: domain.DateOf(input.ReleaseDate),
		GenreID:     input.GenreID,
		Description: input.Description,
	}
	if err := s.db.WithContext(ctx).Create(album).Error; err != nil {
		return nil, fmt.Errorf("failed to create album: %w", err)
	}
	return album, nil
}

func (s *CatalogService) UpdateAlbum(ctx context.Context, artistID, albumID uuid.UUID, input *AlbumInput) (*models.Album, error) {
	album, err := s.ownedAlbum(ctx, s.db, artistID, albumID)
	if err != nil {
		return nil, err
	}
	if input.ReleaseDate.IsZero() {
		return nil, domain.NewValidationError("release_date", "release_date is required")
	}
	if err := s.checkGenre(ctx, input.GenreID); err != nil {
		return nil, err
	}

	album.Title = strings.TrimSpace(input.Title)
	album.ReleaseDate = domain.DateOf(input.ReleaseDate)
	album.GenreID = input.GenreID
	album.Description = input.Description

	if err := s.db.WithContext(ctx).Save(album).Error; err != nil {
		return nil, fmt.Errorf("failed to update album: %w", err)
	}
	return album, nil
}

// SetAlbumCover stores the uploaded cover URL on an owned album.
func (s *CatalogService) SetAlbumCover(ctx context.Context, artistID, albumID uuid.UUID, url string) (*models.Album, error) {
	album, err := s.ownedAlbum(ctx, s.db, artistID, albumID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(album).Update("cover_url", url).Error; err != nil {
		return nil, fmt.Errorf("failed to update cover: %w", err)
	}
	album.CoverURL = url
	return album, nil
}

// DeleteAlbum removes the album together with its tracks and every favorite and playlist entry
// that points at them.
func (s *CatalogService) DeleteAlbum(ctx context.Context, artistID, albumID uuid.UUID) error {
	return database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		album, err := s.ownedAlbum(ctx, tx, artistID, albumID)
		if err != nil {
			return err
		}

		trackIDs := tx.Model(&models.Track{}).Select("id").Where("album_id = ?", album.ID)
		if err := tx.Where("track_id IN (?)", trackIDs).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorites: %w", err)
		}
		if err := tx.Exec("DELETE FROM playlist_tracks WHERE track_id IN (?)", trackIDs).Error; err != nil {
			return fmt.Errorf("failed to detach tracks from playlists: %w", err)
		}
		if err := tx.Where("album_id = ?", album.ID).Delete(&models.Track{}).Error; err != nil {
			return fmt.Errorf("failed to delete tracks: %w", err)
		}
		if err := tx.Delete(album).Error; err != nil {
			return fmt.Errorf("failed to delete album: %w", err)
		}
		return nil
	})
}

// NextTrackNumber suggests the number after the highest one used in the album.
func (s *CatalogService) NextTrackNumber(ctx context.Context, artistID, albumID uuid.UUID) (int, error) {
	if _, err := s.ownedAlbum(ctx, s.db, artistID, albumID); err != nil {
		return 0, err
	}

	var maxNumber int
	if err := s.db.WithContext(ctx).Model(&models.Track{}).
		Select("COALESCE(MAX(track_number), 0)").
		Where("album_id = ?", albumID).
		Row().Scan(&maxNumber); err != nil {
		return 0, fmt.Errorf("failed to read track numbers: %w", err)
	}
	return maxNumber + 1, nil
}

func (s *CatalogService) GetTrack(ctx context.Context, trackID uuid.UUID) (*models.Track, error) {
	var track models.Track
	if err := s.db.WithContext(ctx).Preload("Album.Artist").Where("id = ?", trackID).First(&track).Error; err != nil {
		return nil, lookupError(err, "track")
	}
	return &track, nil
}

func validateTrackInput(input *TrackInput) error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(input.Title) == "" {
		verr.Add("title", "title is required")
	}
	if input.TrackNumber <= 0 {
		verr.Add("track_number", "track_number must be a positive number")
	}
	if input.DurationMinutes != nil && *input.DurationMinutes < 0 {
		verr.Add("duration_minutes", "duration_minutes must not be negative")
	}
	if input.DurationSeconds != nil && (*input.DurationSeconds < 0 || *input.DurationSeconds > 59) {
		verr.Add("duration_seconds", "duration_seconds must be between 0 and 59")
	}
	return verr.OrNil()
}

func trackNumberTaken(number int) error {
	return domain.NewValidationError("track_number", fmt.Sprintf("track number %d is already used in this album", number))
}

func (s *CatalogService) ensureTrackNumberFree(ctx context.Context, albumID uuid.UUID, number int, except *uuid.UUID) error {
	query := s.db.WithContext(ctx).Model(&models.Track{}).Where("album_id = ? AND track_number = ?", albumID, number)
	if except != nil {
		query = query.Where("id <> ?", *except)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check track number: %w", err)
	}
	if count > 0 {
		return trackNumberTaken(number)
	}
	return nil
}

func (s *CatalogService) CreateTrack(ctx context.Context, artistID, albumID uuid.UUID, input *TrackInput) (*models.Track, error) {
	if err := validateTrackInput(input); err != nil {
		return nil, err
	}
	if _, err := s.ownedAlbum(ctx, s.db, artistID, albumID); err != nil {
		return nil, err
	}
	if err := s.ensureTrackNumberFree(ctx, albumID, input.TrackNumber, nil); err != nil {
		return nil, err
	}

	track := &models.Track{
		Title:           strings.TrimSpace(input.Title),
		AlbumID:         albumID,
		TrackNumber:     input.TrackNumber,
		DurationSeconds: domain.TrackDurationFromParts(input.DurationMinutes, input.DurationSeconds),
	}
	if err := s.db.WithContext(ctx).Create(track).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, trackNumberTaken(input.TrackNumber)
		}
		return nil, fmt.Errorf("failed to create track: %w", err)
	}
	return track, nil
}

func (s *CatalogService) ownedTrack(ctx context.Context, artistID, trackID uuid.UUID) (*models.Track, error) {
	var track models.Track
	owned := s.db.Model(&models.Album{}).Select("id").Where("artist_id = ?", artistID)
	if err := s.db.WithContext(ctx).
		Where("id = ? AND album_id IN (?)", trackID, owned).
		First(&track).Error; err != nil {
		return nil, lookupError(err, "track")
	}
	return &track, nil
}

func (s *CatalogService) UpdateTrack(ctx context.Context, artistID, trackID uuid.UUID, input *TrackInput) (*models.Track, error) {
	if err := validateTrackInput(input); err != nil {
		return nil, err
	}
	track, err := s.ownedTrack(ctx, artistID, trackID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureTrackNumberFree(ctx, track.AlbumID, input.TrackNumber, &track.ID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":            strings.TrimSpace(input.Title),
		"track_number":     input.TrackNumber,
		"duration_seconds": domain.TrackDurationFromParts(input.DurationMinutes, input.DurationSeconds),
	}
	if err := s.db.WithContext(ctx).Model(&models.Track{}).Where("id = ?", track.ID).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, trackNumberTaken(input.TrackNumber)
		}
		return nil, fmt.Errorf("failed to update track: %w", err)
	}
	return s.GetTrack(ctx, track.ID)
}

func (s *CatalogService) DeleteTrack(ctx context.Context, artistID, trackID uuid.UUID) error {
	track, err := s.ownedTrack(ctx, artistID, trackID)
	if err != nil {
		return err
	}

	return database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Where("track_id = ?", track.ID).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorites: %w", err)
		}
		if err := tx.Exec("DELETE FROM playlist_tracks WHERE track_id = ?", track.ID).Error; err != nil {
			return fmt.Errorf("failed to detach track from playlists: %w", err)
		}
		if err := tx.Where("id = ?", track.ID).Delete(&models.Track{}).Error; err != nil {
			return fmt.Errorf("failed to delete track: %w", err)
		}
		return nil
	})
}

// Search looks for q in album, track and artist fields, case-insensitively.
func (s *CatalogService) Search(ctx context.Context, q string) (*SearchResult, error) {
	result := &SearchResult{
		Query:   strings.TrimSpace(q),
		Albums:  []models.Album{},
		Tracks:  []models.Track{},
		Artists: []models.User{},
	}
	if result.Query == "" {
		return result, nil
	}

	pattern := likePattern(q)
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Album{}).
		Joins("LEFT JOIN genres ON genres.id = albums.genre_id").
		Where("LOWER(albums.title) LIKE ? ESCAPE '!' OR LOWER(albums.description) LIKE ? ESCAPE '!' OR LOWER(genres.name) LIKE ? ESCAPE '!'", pattern, pattern, pattern).
		Preload("Artist").Preload("Genre").
		Order("albums.release_date DESC").
		Limit(searchAlbumLimit).
		Find(&result.Albums).Error; err != nil {
		return nil, fmt.Errorf("failed to search albums: %w", err)
	}

	if err := db.Model(&models.Track{}).
		Joins("JOIN albums ON albums.id = tracks.album_id").
		Joins("JOIN users ON users.id = albums.artist_id").
		Where("LOWER(tracks.title) LIKE ? ESCAPE '!' OR LOWER(albums.title) LIKE ? ESCAPE '!' OR LOWER(users.username) LIKE ? ESCAPE '!' OR LOWER(users.stage_name) LIKE ? ESCAPE '!'",
			pattern, pattern, pattern, pattern).
		Preload("Album.Artist").
		Order("tracks.title ASC").
		Limit(searchTrackLimit).
		Find(&result.Tracks).Error; err != nil {
		return nil, fmt.Errorf("failed to search tracks: %w", err)
	}

	if err := db.
		Where("role = ?", domain.RoleArtist).
		Where("LOWER(username) LIKE ? ESCAPE '!' OR LOWER(stage_name) LIKE ? ESCAPE '!' OR LOWER(bio) LIKE ? ESCAPE '!'", pattern, pattern, pattern).
		Order("username ASC").
		Limit(searchArtistLimit).
		Find(&result.Artists).Error; err != nil {
		return nil, fmt.Errorf("failed to search artists: %w", err)
	}

	return result, nil
}
