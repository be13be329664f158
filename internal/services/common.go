// internal/services/common.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/domain"
)

// Clock returns the current time; services take one so date rules can be tested.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

func clockOrDefault(now Clock) Clock {
	if now == nil {
		return systemClock
	}
	return now
}

// lookupError turns a missing row into domain.ErrNotFound.
func lookupError(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

// likeEscape is the ESCAPE character every LIKE clause declares. MySQL reads a backslash inside
// a string literal as its own escape, so a neutral character is used.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// escapeLike makes s match literally inside a LIKE pattern declared with ESCAPE '!'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE ? ESCAPE '!'.
func likePattern(q string) string {
	return "%" + escapeLike(strings.ToLower(strings.TrimSpace(q))) + "%"
}
