// internal/services/contract_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/config"
	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
	"github.com/musichub/musichub-backend/internal/testutil"
)

func newContractService(db *gorm.DB) *ContractService {
	notifications := NewNotificationService(db, &config.Config{})
	return NewContractService(db, notifications, testutil.FixedClock(2024, time.June, 15))
}

func contractInput(artist *models.User, months int, status domain.ContractStatus) *ContractInput {
	return &ContractInput{
		ArtistID:             artist.ID,
		ContractType:         domain.ContractTypeDistribution,
		Status:               status,
		ArtistRoyaltyPercent: 70,
		LabelRoyaltyPercent:  30,
		DurationMonths:       months,
		StartDate:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateContractDerivesTerms(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := newContractService(db)

	manager := testutil.CreateUser(t, db, domain.RoleLabelManager)
	artist := testutil.CreateUser(t, db, domain.RoleArtist)

	tests := []struct {
		name       string
		months     int
		status     domain.ContractStatus
		wantStatus domain.ContractStatus
		wantEnd    time.Time
		wantLeft   int
	}{
		{"long running stays active", 12, domain.ContractStatusActive, domain.ContractStatusActive, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 6},
		{"close to the end becomes expiring", 7, domain.ContractStatusActive, domain.ContractStatusExpiring, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), 1},
		{"past the end is expired", 5, domain.ContractStatusActive, domain.ContractStatusExpired, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 0},
		{"empty status means pending", 12, "", domain.ContractStatusPending, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 6},
		{"pending is not flagged expiring", 7, domain.ContractStatusPending, domain.ContractStatusPending, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := svc.Create(ctx, manager.ID, contractInput(artist, tt.months, tt.status))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, view.Status)
			assert.True(t, tt.wantEnd.Equal(view.EndDate), "end date %s", view.EndDate)
			assert.Equal(t, tt.wantLeft, view.MonthsRemaining)

			var stored models.Contract
			require.NoError(t, db.Where("id = ?", view.ID).First(&stored).Error)
			assert.Equal(t, tt.wantStatus, stored.Status)
		})
	}
}

func TestCreateContractRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := newContractService(db)

	manager := testutil.CreateUser(t, db, domain.RoleLabelManager)
	artist := testutil.CreateUser(t, db, domain.RoleArtist)
	listener := testutil.CreateUser(t, db, domain.RoleListener)

	badSplit := contractInput(artist, 12, domain.ContractStatusActive)
	badSplit.LabelRoyaltyPercent = 20

	_, err := svc.Create(ctx, manager.ID, badSplit)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "royalty_split", verr.Fields[0].Field)

	_, err = svc.Create(ctx, manager.ID, contractInput(listener, 12, domain.ContractStatusActive))
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "artist_id", verr.Fields[0].Field)

	var contracts, notifications int64
	require.NoError(t, db.Model(&models.Contract{}).Count(&contracts).Error)
	require.NoError(t, db.Model(&models.Notification{}).Count(&notifications).Error)
	assert.Zero(t, contracts)
	assert.Zero(t, notifications)
}

func TestUpdateContractNotifiesOnStatusChange(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := newContractService(db)

	manager := testutil.CreateUser(t, db, domain.RoleLabelManager)
	artist := testutil.CreateUser(t, db, domain.RoleArtist)
	outsider := testutil.CreateUser(t, db, domain.RoleLabelManager)

	created, err := svc.Create(ctx, manager.ID, contractInput(artist, 12, domain.ContractStatusPending))
	require.NoError(t, err)

	_, err = svc.Update(ctx, outsider.ID, created.ID, contractInput(artist, 12, domain.ContractStatusActive))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// same status, new notes: no status notification
	input := contractInput(artist, 12, domain.ContractStatusPending)
	input.Notes = "renegotiated"
	_, err = svc.Update(ctx, manager.ID, created.ID, input)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, manager.ID, created.ID, contractInput(artist, 7, domain.ContractStatusActive))
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusExpiring, updated.Status)

	var notifications []models.Notification
	require.NoError(t, db.Where("recipient_id = ?", artist.ID).Order("type ASC").Find(&notifications).Error)
	require.Len(t, notifications, 2)
	assert.Equal(t, NotificationContractCreated, notifications[0].Type)
	assert.Equal(t, NotificationContractStatus, notifications[1].Type)
}

func TestListContractsSortedByMonthsRemaining(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := newContractService(db)

	manager := testutil.CreateUser(t, db, domain.RoleLabelManager)
	artist := testutil.CreateUser(t, db, domain.RoleArtist)

	for _, months := range []int{12, 7, 24} {
		_, err := svc.Create(ctx, manager.ID, contractInput(artist, months, domain.ContractStatusActive))
		require.NoError(t, err)
	}

	asc, err := svc.List(ctx, manager.ID, ContractFilter{Sort: "months_remaining"})
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, []int{1, 6, 18}, monthsOf(asc))

	desc, err := svc.List(ctx, manager.ID, ContractFilter{Sort: "-months_remaining"})
	require.NoError(t, err)
	assert.Equal(t, []int{18, 6, 1}, monthsOf(desc))

	expiring, err := svc.List(ctx, manager.ID, ContractFilter{Status: domain.ContractStatusExpiring})
	require.NoError(t, err)
	assert.Len(t, expiring, 1)
}

func monthsOf(views []ContractView) []int {
	out := make([]int, len(views))
	for i, v := range views {
		out[i] = v.MonthsRemaining
	}
	return out
}

func TestGetContractIncludesArtistAlbums(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := newContractService(db)

	manager := testutil.CreateUser(t, db, domain.RoleLabelManager)
	artist := testutil.CreateUser(t, db, domain.RoleArtist)
	testutil.CreateAlbum(t, db, artist, "First")
	testutil.CreateAlbum(t, db, artist, "Second")

	created, err := svc.Create(ctx, manager.ID, contractInput(artist, 12, domain.ContractStatusActive))
	require.NoError(t, err)

	detail, err := svc.Get(ctx, manager.ID, created.ID)
	require.NoError(t, err)
	assert.Len(t, detail.ArtistAlbums, 2)
	require.NotNil(t, detail.Artist)
	assert.Equal(t, artist.ID, detail.Artist.ID)

	require.NoError(t, svc.Delete(ctx, manager.ID, created.ID))
	_, err = svc.Get(ctx, manager.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContractStoresRoyaltiesAtTwoDecimals(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := newContractService(db)

	manager := testutil.CreateUser(t, db, domain.RoleLabelManager)
	artist := testutil.CreateUser(t, db, domain.RoleArtist)

	input := contractInput(artist, 12, domain.ContractStatusActive)
	input.ArtistRoyaltyPercent = 1.005
	input.LabelRoyaltyPercent = 98.995
	created, err := svc.Create(ctx, manager.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 1.0, created.ArtistRoyaltyPercent)
	assert.Equal(t, 99.0, created.LabelRoyaltyPercent)

	var stored models.Contract
	require.NoError(t, db.Where("id = ?", created.ID).First(&stored).Error)
	assert.Equal(t, int64(10000), domain.ToHundredths(stored.ArtistRoyaltyPercent)+domain.ToHundredths(stored.LabelRoyaltyPercent))
}

func TestUpdateContractWithoutStatusKeepsStoredStatus(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := newContractService(db)

	manager := testutil.CreateUser(t, db, domain.RoleLabelManager)
	artist := testutil.CreateUser(t, db, domain.RoleArtist)

	created, err := svc.Create(ctx, manager.ID, contractInput(artist, 12, domain.ContractStatusActive))
	require.NoError(t, err)
	require.Equal(t, domain.ContractStatusActive, created.Status)

	input := contractInput(artist, 12, "")
	input.Notes = "notes only"
	updated, err := svc.Update(ctx, manager.ID, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusActive, updated.Status)
	assert.Equal(t, "notes only", updated.Notes)

	// the stored status still goes through the lifecycle rules
	updated, err = svc.Update(ctx, manager.ID, created.ID, contractInput(artist, 7, ""))
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusExpiring, updated.Status)

	var statusChanges int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", artist.ID, NotificationContractStatus).
		Count(&statusChanges).Error)
	assert.Equal(t, int64(1), statusChanges)
}

func TestArtistSearchFlagsContractedArtists(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := newContractService(db)

	manager := testutil.CreateUser(t, db, domain.RoleLabelManager)
	signed := testutil.CreateUser(t, db, domain.RoleArtist)
	free := testutil.CreateUser(t, db, domain.RoleArtist)
	testutil.CreateUser(t, db, domain.RoleListener)

	album := testutil.CreateAlbum(t, db, signed, "Catalogue")
	testutil.CreateTrack(t, db, album, 1, nil)
	testutil.CreateTrack(t, db, album, 2, nil)

	_, err := svc.Create(ctx, manager.ID, contractInput(signed, 12, domain.ContractStatusActive))
	require.NoError(t, err)
	_, err = svc.Create(ctx, manager.ID, contractInput(free, 12, domain.ContractStatusPending))
	require.NoError(t, err)

	result, err := svc.ArtistSearch(ctx, manager.ID, "")
	require.NoError(t, err)
	require.Len(t, result.Artists, 2)
	assert.Equal(t, []uuid.UUID{signed.ID}, result.ContractedArtistIDs)

	byID := map[string]ArtistCandidate{}
	for _, a := range result.Artists {
		byID[a.ID.String()] = a
	}
	assert.True(t, byID[signed.ID.String()].Contracted)
	assert.Equal(t, int64(1), byID[signed.ID.String()].AlbumsCount)
	assert.Equal(t, int64(2), byID[signed.ID.String()].TracksCount)
	assert.False(t, byID[free.ID.String()].Contracted)

	result, err = svc.ArtistSearch(ctx, manager.ID, free.Username)
	require.NoError(t, err)
	require.Len(t, result.Artists, 1)
	assert.Equal(t, free.ID, result.Artists[0].ID)

	// LIKE wildcards in the query match literally
	result, err = svc.ArtistSearch(ctx, manager.ID, "%")
	require.NoError(t, err)
	assert.Empty(t, result.Artists)

	require.NoError(t, db.Model(free).Update("stage_name", "Salt_Shaker").Error)
	result, err = svc.ArtistSearch(ctx, manager.ID, "t_s")
	require.NoError(t, err)
	require.Len(t, result.Artists, 1)
	assert.Equal(t, free.ID, result.Artists[0].ID)
}
