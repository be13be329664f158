// internal/services/dashboard_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
)

const (
	artistRecentTracks      = 5
	listenerAlbums          = 12
	listenerFavorites       = 10
	managerManagedArtists   = 4
	managerRecentContracts  = 3
	producerRecentBeats     = 5
	producerOpenProjectsCap = 10
)

type DashboardService struct {
	db         *gorm.DB
	now        Clock
	assemblers map[domain.Role]dashboardAssembler
}

type dashboardAssembler func(ctx context.Context, user *models.User) (interface{}, error)

// Dashboard is the role-specific landing data for a signed-in user.
type Dashboard struct {
	Role domain.Role `json:"role"`
	Data interface{} `json:"data"`
}

type ArtistDashboard struct {
	TotalAlbums        int64          `json:"total_albums"`
	TotalTracks        int64          `json:"total_tracks"`
	OpenCollaborations int64          `json:"open_collaborations"`
	RecentTracks       []models.Track `json:"recent_tracks"`
}

type ProducerDashboard struct {
	TotalBeats            int64               `json:"total_beats"`
	AvailableBeats        int64               `json:"available_beats"`
	OpenCollaborations    []CollaborationView `json:"open_collaborations"`
	OverdueCollaborations int                 `json:"overdue_collaborations"`
	RecentBeats           []models.Beat       `json:"recent_beats"`
}

type PlaylistSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TracksCount int64     `json:"tracks_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListenerDashboard struct {
	Albums    []models.Album    `json:"albums"`
	Playlists []PlaylistSummary `json:"playlists"`
	Favorites []models.Favorite `json:"favorites"`
}

type ManagedArtist struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	StageName   string    `json:"stage_name,omitempty"`
	AlbumsCount int64     `json:"albums_count"`
}

type ManagerDashboard struct {
	TotalArtists    int64           `json:"total_artists"`
	TotalReleases   int64           `json:"total_releases"`
	ManagedArtists  []ManagedArtist `json:"managed_artists"`
	RecentContracts []ContractView  `json:"recent_contracts"`
}

type AdminDashboard struct {
	UsersByRole    map[domain.Role]int64 `json:"users_by_role"`
	Albums         int64                 `json:"albums"`
	Tracks         int64                 `json:"tracks"`
	Contracts      int64                 `json:"contracts"`
	Beats          int64                 `json:"beats"`
	Collaborations int64                 `json:"collaborations"`
}

type LandingStats struct {
	TotalArtists int64 `json:"total_artists"`
	TotalAlbums  int64 `json:"total_albums"`
	TotalGenres  int64 `json:"total_genres"`
}

func NewDashboardService(db *gorm.DB, now Clock) *DashboardService {
	s := &DashboardService{db: db, now: clockOrDefault(now)}
	s.assemblers = map[domain.Role]dashboardAssembler{
		domain.RoleArtist:       s.artistDashboard,
		domain.RoleProducer:     s.producerDashboard,
		domain.RoleListener:     s.listenerDashboard,
		domain.RoleLabelManager: s.managerDashboard,
		domain.RoleAdmin:        s.adminDashboard,
	}
	return s
}

// ForUser dispatches to the assembler for the user's role.
func (s *DashboardService) ForUser(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, lookupError(err, "user")
	}

	assemble, ok := s.assemblers[user.Role]
	if !ok {
		return nil, fmt.Errorf("%w: no dashboard for role %q", domain.ErrForbidden, user.Role)
	}
	data, err := assemble(ctx, &user)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Role: user.Role, Data: data}, nil
}

func (s *DashboardService) artistDashboard(ctx context.Context, user *models.User) (interface{}, error) {
	db := s.db.WithContext(ctx)
	d := &ArtistDashboard{RecentTracks: []models.Track{}}

	if err := db.Model(&models.Album{}).Where("artist_id = ?", user.ID).Count(&d.TotalAlbums).Error; err != nil {
		return nil, fmt.Errorf("failed to count albums: %w", err)
	}
	ownTracks := func() *gorm.DB {
		return db.Model(&models.Track{}).
			Joins("JOIN albums ON albums.id = tracks.album_id").
			Where("albums.artist_id = ?", user.ID)
	}
	if err := ownTracks().Count(&d.TotalTracks).Error; err != nil {
		return nil, fmt.Errorf("failed to count tracks: %w", err)
	}
	if err := ownTracks().
		Preload("Album").
		Order("tracks.created_at DESC").
		Limit(artistRecentTracks).
		Find(&d.RecentTracks).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent tracks: %w", err)
	}
	if err := db.Model(&models.Collaboration{}).
		Where("artist_id = ? AND status IN ?", user.ID, inProgressStatuses()).
		Count(&d.OpenCollaborations).Error; err != nil {
		return nil, fmt.Errorf("failed to count collaborations: %w", err)
	}
	return d, nil
}

func inProgressStatuses() []domain.CollaborationStatus {
	return []domain.CollaborationStatus{
		domain.CollaborationStatusPending,
		domain.CollaborationStatusActive,
		domain.CollaborationStatusRecording,
		domain.CollaborationStatusMixing,
	}
}

func (s *DashboardService) producerDashboard(ctx context.Context, user *models.User) (interface{}, error) {
	db := s.db.WithContext(ctx)
	d := &ProducerDashboard{OpenCollaborations: []CollaborationView{}, RecentBeats: []models.Beat{}}

	if err := db.Model(&models.Beat{}).Where("producer_id = ?", user.ID).Count(&d.TotalBeats).Error; err != nil {
		return nil, fmt.Errorf("failed to count beats: %w", err)
	}
	if err := db.Model(&models.Beat{}).
		Where("producer_id = ? AND is_available = ?", user.ID, true).
		Count(&d.AvailableBeats).Error; err != nil {
		return nil, fmt.Errorf("failed to count available beats: %w", err)
	}
	if err := db.Where("producer_id = ?", user.ID).
		Order("created_at DESC").
		Limit(producerRecentBeats).
		Find(&d.RecentBeats).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent beats: %w", err)
	}

	var open []models.Collaboration
	if err := db.Preload("Artist").
		Where("producer_id = ? AND status IN ?", user.ID, inProgressStatuses()).
		Order("deadline ASC").
		Find(&open).Error; err != nil {
		return nil, fmt.Errorf("failed to load collaborations: %w", err)
	}
	today := s.now()
	for _, c := range open {
		overdue := domain.IsCollaborationOverdue(c.Deadline, c.Status, today)
		if overdue {
			d.OverdueCollaborations++
		}
		if len(d.OpenCollaborations) < producerOpenProjectsCap {
			d.OpenCollaborations = append(d.OpenCollaborations, CollaborationView{Collaboration: c, IsOverdue: overdue})
		}
	}
	return d, nil
}

func (s *DashboardService) listenerDashboard(ctx context.Context, user *models.User) (interface{}, error) {
	db := s.db.WithContext(ctx)
	d := &ListenerDashboard{
		Albums:    []models.Album{},
		Playlists: []PlaylistSummary{},
		Favorites: []models.Favorite{},
	}

	if err := db.Preload("Artist").Preload("Genre").
		Order("release_date DESC").
		Limit(listenerAlbums).
		Find(&d.Albums).Error; err != nil {
		return nil, fmt.Errorf("failed to load albums: %w", err)
	}
	if err := db.Model(&models.Playlist{}).
		Select("playlists.id, playlists.name, playlists.description, playlists.created_at, COUNT(playlist_tracks.track_id) AS tracks_count").
		Joins("LEFT JOIN playlist_tracks ON playlist_tracks.playlist_id = playlists.id").
		Where("playlists.user_id = ?", user.ID).
		Group("playlists.id, playlists.name, playlists.description, playlists.created_at").
		Order("playlists.created_at DESC").
		Scan(&d.Playlists).Error; err != nil {
		return nil, fmt.Errorf("failed to load playlists: %w", err)
	}
	if err := db.Preload("Track.Album.Artist").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(listenerFavorites).
		Find(&d.Favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return d, nil
}

// managerDashboard runs its independent queries concurrently.
func (s *DashboardService) managerDashboard(ctx context.Context, user *models.User) (interface{}, error) {
	d := &ManagerDashboard{ManagedArtists: []ManagedArtist{}, RecentContracts: []ContractView{}}
	current := []domain.ContractStatus{domain.ContractStatusActive, domain.ContractStatusExpiring}

	g, ctx := errgroup.WithContext(ctx)
	db := func() *gorm.DB { return s.db.WithContext(ctx) }

	g.Go(func() error {
		if err := db().Model(&models.Contract{}).
			Where("manager_id = ? AND status = ?", user.ID, domain.ContractStatusActive).
			Count(&d.TotalArtists).Error; err != nil {
			return fmt.Errorf("failed to count contracted artists: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := db().Model(&models.Album{}).
			Distinct("albums.id").
			Joins("JOIN contracts ON contracts.artist_id = albums.artist_id").
			Where("contracts.manager_id = ? AND contracts.status = ?", user.ID, domain.ContractStatusActive).
			Count(&d.TotalReleases).Error; err != nil {
			return fmt.Errorf("failed to count releases: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		artists := db().Model(&models.Contract{}).
			Select("artist_id").
			Where("manager_id = ? AND status IN ?", user.ID, current)
		if err := db().Model(&models.User{}).
			Select("users.id, users.username, users.stage_name, (SELECT COUNT(*) FROM albums WHERE albums.artist_id = users.id) AS albums_count").
			Where("users.role = ? AND users.id IN (?)", domain.RoleArtist, artists).
			Order("users.username ASC").
			Limit(managerManagedArtists).
			Scan(&d.ManagedArtists).Error; err != nil {
			return fmt.Errorf("failed to load managed artists: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var contracts []models.Contract
		if err := db().Preload("Artist").
			Where("manager_id = ?", user.ID).
			Order("created_at DESC").
			Limit(managerRecentContracts).
			Find(&contracts).Error; err != nil {
			return fmt.Errorf("failed to load recent contracts: %w", err)
		}
		today := s.now()
		for _, c := range contracts {
			d.RecentContracts = append(d.RecentContracts, ContractView{
				Contract:        c,
				MonthsRemaining: domain.MonthsRemaining(c.EndDate, today),
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DashboardService) adminDashboard(ctx context.Context, user *models.User) (interface{}, error) {
	db := s.db.WithContext(ctx)
	d := &AdminDashboard{UsersByRole: make(map[domain.Role]int64)}

	var rows []struct {
		Role  domain.Role
		Count int64
	}
	if err := db.Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	for _, r := range rows {
		d.UsersByRole[r.Role] = r.Count
	}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Album{}, &d.Albums},
		{&models.Track{}, &d.Tracks},
		{&models.Contract{}, &d.Contracts},
		{&models.Beat{}, &d.Beats},
		{&models.Collaboration{}, &d.Collaborations},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}
	return d, nil
}

// LandingStats is public.
func (s *DashboardService) LandingStats(ctx context.Context) (*LandingStats, error) {
	db := s.db.WithContext(ctx)
	stats := &LandingStats{}

	if err := db.Model(&models.User{}).Where("role = ?", domain.RoleArtist).Count(&stats.TotalArtists).Error; err != nil {
		return nil, fmt.Errorf("failed to count artists: %w", err)
	}
	if err := db.Model(&models.Album{}).Count(&stats.TotalAlbums).Error; err != nil {
		return nil, fmt.Errorf("failed to count albums: %w", err)
	}
	if err := db.Model(&models.Genre{}).Count(&stats.TotalGenres).Error; err != nil {
		return nil, fmt.Errorf("failed to count genres: %w", err)
	}
	return stats, nil
}
