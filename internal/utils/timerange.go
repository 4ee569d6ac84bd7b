package utils

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Overlaps reports whether [startA, endA) and [startB, endB) share any instant.
// Inputs are zero-padded 24h "HH:MM" strings, so lexical order is time order.
// Adjacent ranges (endA == startB) do not overlap.
func Overlaps(startA, endA, startB, endB string) bool {
	return startA < endB && endA > startB
}

// ValidHHMM accepts exactly "HH:MM" with hours 00-23 and minutes 00-59.
func ValidHHMM(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

func ValidWeekday(d int) bool {
	return d >= int(time.Sunday) && d <= int(time.Saturday)
}

// Weekday parses a YYYY-MM-DD date and returns its day of week (0 = Sunday).
func Weekday(date string) (time.Weekday, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

func ContainsDay(days []int, d time.Weekday) bool {
	for _, day := range days {
		if day == int(d) {
			return true
		}
	}
	return false
}

// Within reports whether [start, end) fits inside opening hours [opening, closing].
func Within(start, end, opening, closing string) bool {
	return start >= opening && end <= closing
}

// HoursBetween returns the length of [start, end) in hours. Both must be valid HH:MM.
func HoursBetween(start, end string) float64 {
	s, _ := time.Parse(ClockLayout, start)
	e, _ := time.Parse(ClockLayout, end)
	return e.Sub(s).Hours()
}

func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ToMinorUnits converts an amount to cents for payment providers.
func ToMinorUnits(v float64) int64 {
	return int64(math.Round(v * 100))
}

// GenerateBookingCode returns a short uppercase code, e.g. "BK-3F9A1C2D".
func GenerateBookingCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BK-" + strings.ToUpper(id[:8])
}
