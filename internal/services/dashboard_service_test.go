// internal/services/dashboard_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/testutil"
)

func TestDashboardPerRole(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	clock := testutil.FixedClock(2024, time.June, 15)
	dashboards := NewDashboardService(db, clock)
	contracts := NewContractService(db, nil, clock)
	playlists := NewPlaylistService(db)

	manager := testutil.CreateUser(t, db, domain.RoleLabelManager)
	artist := testutil.CreateUser(t, db, domain.RoleArtist)
	listener := testutil.CreateUser(t, db, domain.RoleListener)
	producer := testutil.CreateUser(t, db, domain.RoleProducer)
	admin := testutil.CreateUser(t, db, domain.RoleAdmin)

	album := testutil.CreateAlbum(t, db, artist, "Released")
	testutil.CreateAlbum(t, db, artist, "Also released")
	track := testutil.CreateTrack(t, db, album, 1, testutil.IntPtr(200))

	_, err := contracts.Create(ctx, manager.ID, contractInput(artist, 12, domain.ContractStatusActive))
	require.NoError(t, err)
	_, err = contracts.Create(ctx, manager.ID, contractInput(artist, 12, domain.ContractStatusActive))
	require.NoError(t, err)

	playlist, err := playlists.Create(ctx, listener.ID, &PlaylistInput{Name: "Faves"})
	require.NoError(t, err)
	_, _, err = playlists.AddTrack(ctx, listener.ID, playlist.ID, track.ID)
	require.NoError(t, err)

	t.Run("label manager", func(t *testing.T) {
		d, err := dashboards.ForUser(ctx, manager.ID)
		require.NoError(t, err)
		data, ok := d.Data.(*ManagerDashboard)
		require.True(t, ok)
		assert.Equal(t, int64(2), data.TotalArtists)
		assert.Equal(t, int64(2), data.TotalReleases)
		require.Len(t, data.ManagedArtists, 1)
		assert.Equal(t, int64(2), data.ManagedArtists[0].AlbumsCount)
		require.Len(t, data.RecentContracts, 2)
		assert.Equal(t, 6, data.RecentContracts[0].MonthsRemaining)
	})

	t.Run("artist", func(t *testing.T) {
		d, err := dashboards.ForUser(ctx, artist.ID)
		require.NoError(t, err)
		data := d.Data.(*ArtistDashboard)
		assert.Equal(t, int64(2), data.TotalAlbums)
		assert.Equal(t, int64(1), data.TotalTracks)
		assert.Len(t, data.RecentTracks, 1)
	})

	t.Run("listener", func(t *testing.T) {
		d, err := dashboards.ForUser(ctx, listener.ID)
		require.NoError(t, err)
		data := d.Data.(*ListenerDashboard)
		assert.Len(t, data.Albums, 2)
		require.Len(t, data.Playlists, 1)
		assert.Equal(t, int64(1), data.Playlists[0].TracksCount)
		assert.Empty(t, data.Favorites)
	})

	t.Run("producer", func(t *testing.T) {
		d, err := dashboards.ForUser(ctx, producer.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleProducer, d.Role)
		assert.IsType(t, &ProducerDashboard{}, d.Data)
	})

	t.Run("admin", func(t *testing.T) {
		d, err := dashboards.ForUser(ctx, admin.ID)
		require.NoError(t, err)
		data := d.Data.(*AdminDashboard)
		assert.Equal(t, int64(1), data.UsersByRole[domain.RoleArtist])
		assert.Equal(t, int64(2), data.Contracts)
	})

	stats, err := dashboards.LandingStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalArtists)
	assert.Equal(t, int64(2), stats.TotalAlbums)
}
