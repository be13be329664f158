// internal/domain/royalty.go
package domain

import (
	"fmt"
	"math"
)

const (
	maxPercent = 100.0
	// Percentages are stored as decimal(5,2).
	percentScale = 100
)

// ToHundredths rounds a percentage to the stored precision and returns it in hundredths.
func ToHundredths(percent float64) int64 {
	return int64(math.Round(percent * percentScale))
}

// RoundPercent returns percent at the stored precision, the value ValidateRoyaltySplit checked.
func RoundPercent(percent float64) float64 {
	return float64(ToHundredths(percent)) / percentScale
}

// ValidatePercent checks that a single percentage is within [0, 100].
func ValidatePercent(field string, percent float64) *FieldError {
	if math.IsNaN(percent) || percent < 0 || percent > maxPercent {
		return &FieldError{Field: field, Message: fmt.Sprintf("%s must be between 0 and 100", field)}
	}
	return nil
}

// ValidateRoyaltySplit succeeds iff both percentages are in range and add up to exactly 100
// after rounding to two decimal places.
func ValidateRoyaltySplit(artistPercent, labelPercent float64) error {
	verr := &ValidationError{}
	if fe := ValidatePercent("artist_royalty_percent", artistPercent); fe != nil {
		verr.Fields = append(verr.Fields, *fe)
	}
	if fe := ValidatePercent("label_royalty_percent", labelPercent); fe != nil {
		verr.Fields = append(verr.Fields, *fe)
	}
	if len(verr.Fields) > 0 {
		return verr
	}

	if ToHundredths(artistPercent)+ToHundredths(labelPercent) != maxPercent*percentScale {
		return NewValidationError("royalty_split",
			fmt.Sprintf("artist and label royalty must add up to 100%% (got %.2f%% + %.2f%%)",
				artistPercent, labelPercent))
	}
	return nil
}
