// internal/domain/duration.go
package domain

import (
	"fmt"
	"time"
)

// TotalDuration sums track durations given in seconds; missing durations count as zero.
func TotalDuration(seconds []*int) time.Duration {
	var total time.Duration
	for _, s := range seconds {
		if s != nil {
			total += time.Duration(*s) * time.Second
		}
	}
	return total
}

// SplitHoursMinutes truncates d to whole hours and leftover whole minutes.
func SplitHoursMinutes(d time.Duration) (hours, minutes int) {
	total := int64(d / time.Second)
	return int(total / 3600), int(total % 3600 / 60)
}

func FormatPlaylistDuration(d time.Duration) string {
	h, m := SplitHoursMinutes(d)
	return fmt.Sprintf("%d hours %d minutes", h, m)
}

// FormatTrackDuration renders m:ss, or 0:00 when the track has no duration.
func FormatTrackDuration(seconds *int) string {
	if seconds == nil {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", *seconds/60, *seconds%60)
}

// TrackDurationFromParts combines the minutes and seconds form fields. Both omitted means the
// duration is unknown.
func TrackDurationFromParts(minutes, seconds *int) *int {
	if minutes == nil && seconds == nil {
		return nil
	}
	total := 0
	if minutes != nil {
		total += *minutes * 60
	}
	if seconds != nil {
		total += *seconds
	}
	return &total
}
