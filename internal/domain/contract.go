// internal/domain/contract.go
package domain

import (
	"fmt"
	"time"
)

type ContractType string

const (
	ContractTypeExclusiveRelease ContractType = "exclusive_release"
	ContractTypeDistribution     ContractType = "distribution"
	ContractTypeLongTerm         ContractType = "long_term"
)

func (t ContractType) Valid() bool {
	switch t {
	case ContractTypeExclusiveRelease, ContractTypeDistribution, ContractTypeLongTerm:
		return true
	}
	return false
}

type ContractStatus string

const (
	ContractStatusPending  ContractStatus = "pending"
	ContractStatusActive   ContractStatus = "active"
	ContractStatusExpiring ContractStatus = "expiring"
	ContractStatusExpired  ContractStatus = "expired"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractStatusPending, ContractStatusActive, ContractStatusExpiring, ContractStatusExpired:
		return true
	}
	return false
}

// A contract this close to its end date is flagged as expiring.
const ExpiringWindowMonths = 3

// RecomputeContractStatus applies the lifecycle rule that runs on every contract write:
// no whole month left forces expired, an active contract with at most three months left
// becomes expiring, anything else keeps the status the caller chose.
func RecomputeContractStatus(current ContractStatus, end, today time.Time) ContractStatus {
	remaining := MonthsRemaining(end, today)
	switch {
	case remaining == 0:
		return ContractStatusExpired
	case remaining <= ExpiringWindowMonths && current == ContractStatusActive:
		return ContractStatusExpiring
	default:
		return current
	}
}

// ContractTerms is the caller-supplied part of a contract that the lifecycle rules act on.
type ContractTerms struct {
	Type                 ContractType
	Status               ContractStatus
	ArtistRoyaltyPercent float64
	LabelRoyaltyPercent  float64
	DurationMonths       int
	StartDate            time.Time
}

// DerivedTerms holds the fields computed from ContractTerms on write.
type DerivedTerms struct {
	StartDate       time.Time
	EndDate         time.Time
	Status          ContractStatus
	MonthsRemaining int
}

// ApplyContractTerms validates terms and derives end date and status. Nothing may be persisted
// when it returns an error.
func ApplyContractTerms(terms ContractTerms, today time.Time) (DerivedTerms, error) {
	verr := &ValidationError{}
	if !terms.Type.Valid() {
		verr.Add("contract_type", fmt.Sprintf("unknown contract type %q", terms.Type))
	}
	if !terms.Status.Valid() {
		verr.Add("status", fmt.Sprintf("unknown contract status %q", terms.Status))
	}
	if terms.DurationMonths < 0 {
		verr.Add("duration_months", "duration_months must not be negative")
	}
	if terms.StartDate.IsZero() {
		verr.Add("start_date", "start_date is required")
	}
	if err := ValidateRoyaltySplit(terms.ArtistRoyaltyPercent, terms.LabelRoyaltyPercent); err != nil {
		if royaltyErr, ok := err.(*ValidationError); ok {
			verr.Fields = append(verr.Fields, royaltyErr.Fields...)
		}
	}
	if err := verr.OrNil(); err != nil {
		return DerivedTerms{}, err
	}

	start := DateOf(terms.StartDate)
	end := ContractEndDate(start, terms.DurationMonths)
	return DerivedTerms{
		StartDate:       start,
		EndDate:         end,
		Status:          RecomputeContractStatus(terms.Status, end, today),
		MonthsRemaining: MonthsRemaining(end, today),
	}, nil
}
