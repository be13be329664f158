// internal/domain/collaboration.go
package domain

import "time"

type CollaborationStatus string

const (
	CollaborationStatusPending   CollaborationStatus = "pending"
	CollaborationStatusActive    CollaborationStatus = "active"
	CollaborationStatusRecording CollaborationStatus = "recording"
	CollaborationStatusMixing    CollaborationStatus = "mixing"
	CollaborationStatusCompleted CollaborationStatus = "completed"
	CollaborationStatusCancelled CollaborationStatus = "cancelled"
)

func (s CollaborationStatus) Valid() bool {
	switch s {
	case CollaborationStatusPending, CollaborationStatusActive, CollaborationStatusRecording,
		CollaborationStatusMixing, CollaborationStatusCompleted, CollaborationStatusCancelled:
		return true
	}
	return false
}

// InProgress reports whether work on the collaboration is still open.
func (s CollaborationStatus) InProgress() bool {
	switch s {
	case CollaborationStatusPending, CollaborationStatusActive,
		CollaborationStatusRecording, CollaborationStatusMixing:
		return true
	}
	return false
}

// IsCollaborationOverdue is true when a deadline is set, today is past it and the
// collaboration is still in progress.
func IsCollaborationOverdue(deadline *time.Time, status CollaborationStatus, today time.Time) bool {
	if deadline == nil || !status.InProgress() {
		return false
	}
	return DateOf(today).After(DateOf(*deadline))
}

// CompletedDateFor keeps completed_date in step with the status: stamped once on entering
// completed, cleared when the collaboration is reopened.
func CompletedDateFor(status CollaborationStatus, previous *time.Time, today time.Time) *time.Time {
	if status != CollaborationStatusCompleted {
		return nil
	}
	if previous != nil {
		return previous
	}
	d := DateOf(today)
	return &d
}
