package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDurationInclusiveDays(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{"Same day", "2024-01-15", "2024-01-15", 1},
		{"Consecutive days", "2024-01-15", "2024-01-16", 2},
		{"One week", "2024-01-15", "2024-01-21", 7},
		{"Cross month boundary", "2024-01-30", "2024-02-02", 4},
		{"Cross year boundary", "2023-12-30", "2024-01-02", 4},
		{"Leap day included", "2024-02-28", "2024-03-01", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DurationInclusiveDays(day(tt.start), day(tt.end)))
		})
	}
}

func TestDurationInclusiveDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 1, 16, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 2, DurationInclusiveDays(start, end))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   string
		aEnd     string
		bStart   string
		bEnd     string
		expected bool
	}{
		{"Disjoint", "2024-01-01", "2024-01-05", "2024-01-10", "2024-01-15", false},
		{"Adjacent share endpoint day", "2024-01-01", "2024-01-05", "2024-01-05", "2024-01-10", true},
		{"Contained", "2024-01-01", "2024-01-31", "2024-01-10", "2024-01-15", true},
		{"Partial overlap", "2024-01-01", "2024-01-10", "2024-01-08", "2024-01-20", true},
		{"Back to back no shared day", "2024-01-01", "2024-01-05", "2024-01-06", "2024-01-10", false},
		{"Same single day", "2024-01-15", "2024-01-15", "2024-01-15", "2024-01-15", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(day(tt.aStart), day(tt.aEnd), day(tt.bStart), day(tt.bEnd))
			assert.Equal(t, tt.expected, got)

			// Overlap is symmetric
			sym := Overlaps(day(tt.bStart), day(tt.bEnd), day(tt.aStart), day(tt.aEnd))
			assert.Equal(t, got, sym)
		})
	}
}

func TestOverlaps_SelfOverlap(t *testing.T) {
	assert.True(t, Overlaps(day("2024-01-01"), day("2024-01-05"), day("2024-01-01"), day("2024-01-05")))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(day("2024-01-15"), day("2024-01-15")))
	assert.NoError(t, Validate(day("2024-01-15"), day("2024-01-20")))
	assert.Error(t, Validate(day("2024-01-20"), day("2024-01-15")))
}
