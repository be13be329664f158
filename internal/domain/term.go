// internal/domain/term.go
package domain

import "time"

// DateOf drops the clock part of t and returns the calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths adds n calendar months to the date of start. A day that does not exist in the
// target month resolves to that month's last day, so Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(start time.Time, n int) time.Time {
	y, m, d := start.Date()
	// Normalise via the first of the month so time.Date does not roll over into the next month.
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	ty, tm, _ := first.Date()
	if last := daysIn(ty, tm); d > last {
		d = last
	}
	return time.Date(ty, tm, d, 0, 0, 0, 0, time.UTC)
}

// ContractEndDate is the only place the contract end date is derived.
func ContractEndDate(start time.Time, durationMonths int) time.Time {
	return AddMonths(DateOf(start), durationMonths)
}

// MonthsBetween returns the number of whole calendar months k with AddMonths(from, k) <= to.
// It is zero when to is before from.
func MonthsBetween(from, to time.Time) int {
	from, to = DateOf(from), DateOf(to)
	if to.Before(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	for months > 0 && AddMonths(from, months).After(to) {
		months--
	}
	return months
}

// MonthsRemaining is the calendar-month difference between end and today, floored at zero.
func MonthsRemaining(end, today time.Time) int {
	return MonthsBetween(today, end)
}
