// internal/database/seed_test.go
package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musichub/musichub-backend/internal/config"
	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
)

func TestLoadGenreSeeds(t *testing.T) {
	genres, err := loadGenreSeeds(genresYAML)
	require.NoError(t, err)
	assert.NotEmpty(t, genres)

	_, err = loadGenreSeeds([]byte("genres:\n  - description: nameless\n"))
	assert.Error(t, err)
}

func TestSeedInitialDataIsRepeatable(t *testing.T) {
	db, err := Initialize(config.DatabaseConfig{Driver: "sqlite", Database: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, RunMigrations(db))

	opts := SeedOptions{AdminPassword: "Admin123!"}
	require.NoError(t, SeedInitialData(db, opts))
	require.NoError(t, SeedInitialData(db, opts))

	genres, err := loadGenreSeeds(genresYAML)
	require.NoError(t, err)

	var genreCount, adminCount int64
	require.NoError(t, db.Model(&models.Genre{}).Count(&genreCount).Error)
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&adminCount).Error)

	assert.Equal(t, int64(len(genres)), genreCount)
	assert.Equal(t, int64(1), adminCount)
}

func TestDialectorFor(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		d, err := dialectorFor(config.DatabaseConfig{Driver: driver, Database: ":memory:"})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}

	_, err := dialectorFor(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
