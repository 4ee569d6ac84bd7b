package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		startA, endA, startB, endB string
		want                       bool
	}{
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"partial start", "08:30", "09:30", "09:00", "10:00", true},
		{"partial end", "09:30", "10:30", "09:00", "10:00", true},
		{"contained", "09:15", "09:45", "09:00", "10:00", true},
		{"containing", "08:00", "11:00", "09:00", "10:00", true},
		{"adjacent before", "08:00", "09:00", "09:00", "10:00", false},
		{"adjacent after", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "12:00", "13:00", "09:00", "10:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.startA, tt.endA, tt.startB, tt.endB))
			assert.Equal(t, tt.want, Overlaps(tt.startB, tt.endB, tt.startA, tt.endA), "symmetric")
		})
	}
}

func TestValidHHMM(t *testing.T) {
	for _, ok := range []string{"00:00", "09:05", "23:59"} {
		assert.True(t, ValidHHMM(ok), ok)
	}
	for _, bad := range []string{"", "9:00", "24:00", "12:60", "12-00", "12:000", "ab:cd"} {
		assert.False(t, ValidHHMM(bad), bad)
	}
}

func TestWeekday(t *testing.T) {
	d, err := Weekday("2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = Weekday("2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	_, err = Weekday("19-10-2026")
	assert.Error(t, err)
}

func TestContainsDay(t *testing.T) {
	weekdays := []int{1, 2, 3, 4, 5}
	assert.True(t, ContainsDay(weekdays, time.Monday))
	assert.False(t, ContainsDay(weekdays, time.Sunday))
}

func TestWithin(t *testing.T) {
	assert.True(t, Within("09:00", "17:00", "08:00", "18:00"))
	assert.True(t, Within("08:00", "18:00", "08:00", "18:00"))
	assert.False(t, Within("07:00", "09:00", "08:00", "18:00"))
	assert.False(t, Within("17:00", "18:30", "08:00", "18:00"))
}

func TestHoursAndMoney(t *testing.T) {
	assert.InDelta(t, 8.0, HoursBetween("09:00", "17:00"), 1e-9)
	assert.InDelta(t, 1.5, HoursBetween("09:00", "10:30"), 1e-9)
	assert.Equal(t, 10.13, RoundMoney(10.125000001))
	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
}

func TestGenerateBookingCode(t *testing.T) {
	code := GenerateBookingCode()
	assert.Len(t, code, 11)
	assert.True(t, strings.HasPrefix(code, "BK-"))
	assert.Equal(t, strings.ToUpper(code), code)
	assert.NotEqual(t, code, GenerateBookingCode())
}
