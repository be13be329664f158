package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRoyaltySplit(t *testing.T) {
	tests := []struct {
		name          string
		artist, label float64
		wantFields    []string
	}{
		{"even split", 50, 50, nil},
		{"artist heavy", 70, 30, nil},
		{"two decimals", 62.25, 37.75, nil},
		{"rounds to stored precision", 33.333, 66.667, nil},
		{"all to label", 0, 100, nil},
		{"sum below 100", 60.5, 39, []string{"royalty_split"}},
		{"sum above 100", 60, 41, []string{"royalty_split"}},
		{"off by one cent", 50, 49.99, []string{"royalty_split"}},
		{"out of range", 110, -10, []string{"artist_royalty_percent", "label_royalty_percent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoyaltySplit(tt.artist, tt.label)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			var fields []string
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
				assert.NotEmpty(t, f.Message)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestRoundPercentMatchesValidatedSplit(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{70, 70},
		{33.333, 33.33},
		{66.667, 66.67},
		{1.005, 1},
		{98.995, 99},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundPercent(tt.in), "RoundPercent(%v)", tt.in)
	}

	// a split that validates keeps summing to 100 once stored at two decimals
	require.NoError(t, ValidateRoyaltySplit(1.005, 98.995))
	assert.Equal(t, int64(10000), ToHundredths(RoundPercent(1.005))+ToHundredths(RoundPercent(98.995)))
}

func TestRecomputeContractStatus(t *testing.T) {
	today := date(2024, 6, 1)

	tests := []struct {
		name    string
		current ContractStatus
		end     string
		want    ContractStatus
	}{
		{"ended in the past", ContractStatusActive, "2024-05-31", ContractStatusExpired},
		{"pending but ended", ContractStatusPending, "2024-01-01", ContractStatusExpired},
		{"less than a whole month left", ContractStatusActive, "2024-06-20", ContractStatusExpired},
		{"ends today", ContractStatusPending, "2024-06-01", ContractStatusExpired},
		{"active two months left", ContractStatusActive, "2024-08-15", ContractStatusExpiring},
		{"active exactly three months left", ContractStatusActive, "2024-09-01", ContractStatusExpiring},
		{"active four months left", ContractStatusActive, "2024-10-01", ContractStatusActive},
		{"pending two months left stays pending", ContractStatusPending, "2024-08-15", ContractStatusPending},
		{"expiring extended keeps caller status", ContractStatusExpiring, "2025-06-01", ContractStatusExpiring},
		{"manager reactivates after extension", ContractStatusActive, "2025-06-01", ContractStatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := mustDate(t, tt.end)
			assert.Equal(t, tt.want, RecomputeContractStatus(tt.current, end, today))
		})
	}
}

func TestApplyContractTerms(t *testing.T) {
	today := date(2023, 6, 1)

	t.Run("derives end date with calendar months", func(t *testing.T) {
		derived, err := ApplyContractTerms(ContractTerms{
			Type:                 ContractTypeDistribution,
			Status:               ContractStatusPending,
			ArtistRoyaltyPercent: 60,
			LabelRoyaltyPercent:  40,
			DurationMonths:       1,
			StartDate:            date(2024, 1, 31),
		}, today)

		require.NoError(t, err)
		assert.Equal(t, date(2024, 1, 31), derived.StartDate)
		assert.Equal(t, date(2024, 2, 29), derived.EndDate)
		assert.Equal(t, ContractStatusPending, derived.Status)
		assert.Equal(t, 8, derived.MonthsRemaining)
	})

	t.Run("zero duration is saved as expired", func(t *testing.T) {
		derived, err := ApplyContractTerms(ContractTerms{
			Type:                 ContractTypeLongTerm,
			Status:               ContractStatusPending,
			ArtistRoyaltyPercent: 50,
			LabelRoyaltyPercent:  50,
			DurationMonths:       0,
			StartDate:            today,
		}, today)

		require.NoError(t, err)
		assert.Equal(t, today, derived.EndDate)
		assert.Equal(t, ContractStatusExpired, derived.Status)
		assert.Zero(t, derived.MonthsRemaining)
	})

	t.Run("active contract near its end becomes expiring", func(t *testing.T) {
		derived, err := ApplyContractTerms(ContractTerms{
			Type:                 ContractTypeExclusiveRelease,
			Status:               ContractStatusActive,
			ArtistRoyaltyPercent: 70,
			LabelRoyaltyPercent:  30,
			DurationMonths:       12,
			StartDate:            date(2022, 8, 1),
		}, today)

		require.NoError(t, err)
		assert.Equal(t, date(2023, 8, 1), derived.EndDate)
		assert.Equal(t, ContractStatusExpiring, derived.Status)
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		_, err := ApplyContractTerms(ContractTerms{
			Type:                 "forever",
			Status:               "signed",
			ArtistRoyaltyPercent: 60,
			LabelRoyaltyPercent:  30,
			DurationMonths:       -1,
		}, today)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		var fields []string
		for _, f := range verr.Fields {
			fields = append(fields, f.Field)
		}
		assert.ElementsMatch(t,
			[]string{"contract_type", "status", "duration_months", "start_date", "royalty_split"}, fields)
	})
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed
}
