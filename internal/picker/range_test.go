package picker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d, h, mi, s int) *time.Time {
	t := time.Date(y, m, d, h, mi, s, 0, time.UTC)
	return &t
}

func TestNormalizeRange_TimeModeRoundsToWholeMinutes(t *testing.T) {
	r := NormalizeRange(at(2025, 1, 10, 10, 7, 12), at(2025, 1, 10, 18, 30, 59), true, time.UTC)

	require.NotNil(t, r.Min)
	require.NotNil(t, r.Max)
	assert.Equal(t, *at(2025, 1, 10, 10, 8, 0), *r.Min, "min rounds up")
	assert.Equal(t, *at(2025, 1, 10, 18, 30, 0), *r.Max, "max truncates")
}

func TestNormalizeRange_WholeMinuteMinUnchanged(t *testing.T) {
	r := NormalizeRange(at(2025, 1, 10, 10, 7, 0), nil, true, time.UTC)

	require.NotNil(t, r.Min)
	assert.Nil(t, r.Max)
	assert.Equal(t, *at(2025, 1, 10, 10, 7, 0), *r.Min)
}

func TestNormalizeRange_DateModeUsesDayBoundaries(t *testing.T) {
	r := NormalizeRange(at(2025, 3, 4, 15, 0, 0), at(2025, 3, 9, 1, 0, 0), false, time.UTC)

	assert.Equal(t, *at(2025, 3, 4, 0, 0, 0), *r.Min)
	assert.Equal(t, time.Date(2025, 3, 9, 23, 59, 59, 999999999, time.UTC), *r.Max)
}

func TestNormalizeRange_SwapsInvertedBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max *time.Time
		withTime bool
	}{
		{"time mode", at(2030, 5, 1, 12, 0, 30), at(2020, 5, 1, 12, 0, 30), true},
		{"date mode", at(2030, 5, 1, 12, 0, 0), at(2020, 5, 1, 12, 0, 0), false},
		{"same minute with seconds", at(2025, 1, 1, 10, 0, 40), at(2025, 1, 1, 10, 0, 20), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NormalizeRange(tt.min, tt.max, tt.withTime, time.UTC)
			require.NotNil(t, r.Min)
			require.NotNil(t, r.Max)
			assert.False(t, r.Min.After(*r.Max), "effective min %v after max %v", r.Min, r.Max)
		})
	}
}

func TestRange_Clamp(t *testing.T) {
	r := Range{Min: at(2025, 1, 1, 0, 0, 0), Max: at(2025, 12, 31, 0, 0, 0)}

	got, changed := r.Clamp(*at(2024, 6, 1, 0, 0, 0))
	assert.True(t, changed)
	assert.Equal(t, *r.Min, got)

	got, changed = r.Clamp(*at(2026, 6, 1, 0, 0, 0))
	assert.True(t, changed)
	assert.Equal(t, *r.Max, got)

	inside := *at(2025, 6, 1, 0, 0, 0)
	got, changed = r.Clamp(inside)
	assert.False(t, changed)
	assert.Equal(t, inside, got)
	assert.True(t, r.Contains(inside))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 28, daysInMonth(2023, time.February))
	assert.Equal(t, 29, daysInMonth(2024, time.February))
	assert.Equal(t, 29, daysInMonth(2000, time.February))
	assert.Equal(t, 28, daysInMonth(1900, time.February))
	assert.Equal(t, 31, daysInMonth(2025, time.December))
	assert.Equal(t, 30, daysInMonth(2025, time.April))
}
