package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"leap year end of month", date(2024, 1, 31), 1, date(2024, 2, 29)},
		{"non-leap end of month", date(2023, 1, 31), 1, date(2023, 2, 28)},
		{"three months after jan 31", date(2024, 1, 31), 3, date(2024, 4, 30)},
		{"year rollover", date(2024, 11, 30), 3, date(2025, 2, 28)},
		{"leap day plus a year", date(2024, 2, 29), 12, date(2025, 2, 28)},
		{"plain", date(2024, 3, 15), 12, date(2025, 3, 15)},
		{"zero months", date(2024, 3, 15), 0, date(2024, 3, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.start, tt.n))
		})
	}
}

func TestContractEndDate_DropsClock(t *testing.T) {
	start := time.Date(2024, 1, 31, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, date(2024, 2, 29), ContractEndDate(start, 1))
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"partial month is not counted", date(2024, 1, 20), date(2024, 3, 15), 1},
		{"exact months", date(2024, 5, 10), date(2024, 8, 10), 3},
		{"one day short", date(2024, 5, 10), date(2024, 8, 9), 2},
		{"end of month clamp", date(2024, 1, 31), date(2024, 2, 29), 1},
		{"same day", date(2024, 5, 10), date(2024, 5, 10), 0},
		{"to before from", date(2024, 5, 10), date(2024, 4, 1), 0},
		{"across years", date(2023, 6, 1), date(2025, 6, 1), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsBetween(tt.from, tt.to))
		})
	}
}

func TestMonthsRemaining_ClampedAtZero(t *testing.T) {
	today := date(2024, 6, 1)
	assert.Equal(t, 0, MonthsRemaining(date(2024, 1, 1), today))
	assert.Equal(t, 0, MonthsRemaining(date(2024, 6, 20), today))
	assert.Equal(t, 5, MonthsRemaining(date(2024, 11, 1), today))
}
