// internal/testutil/testutil.go
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/config"
	"github.com/musichub/musichub-backend/internal/database"
	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
)

// NewDB opens a migrated in-memory sqlite database that is closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Initialize(config.DatabaseConfig{
		Driver:   "sqlite",
		Database: ":memory:",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() { database.Close(db) })
	return db
}

// FixedClock returns a now func pinned to the given date at noon UTC.
func FixedClock(year int, month time.Month, day int) func() time.Time {
	at := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func CreateUser(t *testing.T, db *gorm.DB, role domain.Role) *models.User {
	t.Helper()

	name := string(role) + "_" + uuid.NewString()[:8]
	user := &models.User{
		Username: name,
		Email:    name + "@example.com",
		Role:     role,
	}
	require.NoError(t, user.SetPassword("Secret123!"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateAlbum(t *testing.T, db *gorm.DB, artist *models.User, title string) *models.Album {
	t.Helper()

	album := &models.Album{
		Title:       title,
		ArtistID:    artist.ID,
		ReleaseDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(album).Error)
	return album
}

func CreateTrack(t *testing.T, db *gorm.DB, album *models.Album, number int, seconds *int) *models.Track {
	t.Helper()

	track := &models.Track{
		Title:           album.Title + " track",
		AlbumID:         album.ID,
		TrackNumber:     number,
		DurationSeconds: seconds,
	}
	require.NoError(t, db.Create(track).Error)
	return track
}

func IntPtr(v int) *int {
	return &v
}
