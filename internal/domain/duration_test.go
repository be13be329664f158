package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func secs(n int) *int { return &n }

func TestPlaylistDuration(t *testing.T) {
	tests := []struct {
		name   string
		tracks []*int
		want   string
	}{
		{"empty playlist", nil, "0 hours 0 minutes"},
		{"3:30 and 2:45", []*int{secs(210), secs(165)}, "0 hours 6 minutes"},
		{"seconds are truncated", []*int{secs(330), secs(165)}, "0 hours 8 minutes"},
		{"missing durations count as zero", []*int{nil, secs(125), nil}, "0 hours 2 minutes"},
		{"hours", []*int{secs(3600), secs(61)}, "1 hours 1 minutes"},
		{"just under an hour", []*int{secs(3599)}, "0 hours 59 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPlaylistDuration(TotalDuration(tt.tracks)))
		})
	}
}

func TestTotalDuration(t *testing.T) {
	assert.Equal(t, 375*time.Second, TotalDuration([]*int{secs(210), nil, secs(165)}))
	assert.Equal(t, time.Duration(0), TotalDuration(nil))
}

func TestFormatTrackDuration(t *testing.T) {
	assert.Equal(t, "2:05", FormatTrackDuration(secs(125)))
	assert.Equal(t, "3:07", FormatTrackDuration(secs(187)))
	assert.Equal(t, "0:59", FormatTrackDuration(secs(59)))
	assert.Equal(t, "61:00", FormatTrackDuration(secs(3660)))
	assert.Equal(t, "0:00", FormatTrackDuration(nil))
}

func TestTrackDurationFromParts(t *testing.T) {
	assert.Nil(t, TrackDurationFromParts(nil, nil))
	assert.Equal(t, 185, *TrackDurationFromParts(secs(3), secs(5)))
	assert.Equal(t, 180, *TrackDurationFromParts(secs(3), nil))
	assert.Equal(t, 42, *TrackDurationFromParts(nil, secs(42)))
}
