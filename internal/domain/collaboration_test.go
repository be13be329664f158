package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCollaborationOverdue(t *testing.T) {
	today := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	past := date(2024, 6, 9)
	sameDay := date(2024, 6, 10)
	future := date(2024, 7, 1)

	tests := []struct {
		name     string
		deadline *time.Time
		status   CollaborationStatus
		want     bool
	}{
		{"no deadline", nil, CollaborationStatusActive, false},
		{"deadline passed while recording", &past, CollaborationStatusRecording, true},
		{"deadline passed while pending", &past, CollaborationStatusPending, true},
		{"deadline passed while mixing", &past, CollaborationStatusMixing, true},
		{"deadline is today", &sameDay, CollaborationStatusActive, false},
		{"deadline ahead", &future, CollaborationStatusActive, false},
		{"completed ignores deadline", &past, CollaborationStatusCompleted, false},
		{"cancelled ignores deadline", &past, CollaborationStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCollaborationOverdue(tt.deadline, tt.status, today))
		})
	}
}

func TestCompletedDateFor(t *testing.T) {
	today := date(2024, 6, 10)
	earlier := date(2024, 5, 1)

	got := CompletedDateFor(CollaborationStatusCompleted, nil, today)
	require.NotNil(t, got)
	assert.Equal(t, today, *got)

	got = CompletedDateFor(CollaborationStatusCompleted, &earlier, today)
	require.NotNil(t, got)
	assert.Equal(t, earlier, *got)

	assert.Nil(t, CompletedDateFor(CollaborationStatusMixing, &earlier, today))
}

func TestCollaborationStatusValid(t *testing.T) {
	assert.True(t, CollaborationStatusMixing.Valid())
	assert.False(t, CollaborationStatus("released").Valid())
}
