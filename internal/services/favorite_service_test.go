// internal/services/favorite_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
	"github.com/musichub/musichub-backend/internal/testutil"
)

func TestFavoriteToggle(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewFavoriteService(db)

	artist := testutil.CreateUser(t, db, domain.RoleArtist)
	listener := testutil.CreateUser(t, db, domain.RoleListener)
	track := testutil.CreateTrack(t, db, testutil.CreateAlbum(t, db, artist, "Singles"), 1, nil)

	countRows := func() int64 {
		var n int64
		require.NoError(t, db.Model(&models.Favorite{}).
			Where("user_id = ? AND track_id = ?", listener.ID, track.ID).
			Count(&n).Error)
		return n
	}

	favorited, err := svc.Toggle(ctx, listener.ID, track.ID)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.Equal(t, int64(1), countRows())

	ids, err := svc.TrackIDs(ctx, listener.ID)
	require.NoError(t, err)
	assert.True(t, ids[track.ID])

	favorited, err = svc.Toggle(ctx, listener.ID, track.ID)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.Zero(t, countRows())

	favorited, err = svc.Toggle(ctx, listener.ID, track.ID)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.Equal(t, int64(1), countRows())

	list, err := svc.List(ctx, listener.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Track)
	assert.Equal(t, track.ID, list[0].Track.ID)
}

func TestFavoriteUniqueIndex(t *testing.T) {
	db := testutil.NewDB(t)

	artist := testutil.CreateUser(t, db, domain.RoleArtist)
	listener := testutil.CreateUser(t, db, domain.RoleListener)
	track := testutil.CreateTrack(t, db, testutil.CreateAlbum(t, db, artist, "Singles"), 1, nil)

	require.NoError(t, db.Create(&models.Favorite{UserID: listener.ID, TrackID: track.ID}).Error)
	err := db.Create(&models.Favorite{UserID: listener.ID, TrackID: track.ID}).Error
	assert.True(t, isUniqueViolation(err))
}

func TestFavoriteUnknownTrack(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewFavoriteService(db)
	listener := testutil.CreateUser(t, db, domain.RoleListener)

	_, err := svc.Toggle(context.Background(), listener.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
