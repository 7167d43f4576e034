package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

var ErrInvalidMonth = apperror.New(apperror.KindValidation, "month must be in YYYY-MM format")

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// StartOfDay returns midnight of t's calendar date in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SinceMidnight returns the wall-clock time of day of t as a duration,
// keeping sub-second precision. It reads the clock face, so DST shifts on
// the day do not move it.
func SinceMidnight(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
}

// MonthRange returns the first and last calendar dates of a month.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// ParseMonth reads a "YYYY-MM" month; an empty string means the month of now.
func ParseMonth(month string, now time.Time) (int, time.Month, error) {
	if month == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, 0, ErrInvalidMonth
	}
	return t.Year(), t.Month(), nil
}

func FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

func FormatDate(t time.Time) string {
	return t.Format(validator.DateLayout)
}

func FormatDateTime(t time.Time) string {
	return t.Format(validator.DateTimeLayout)
}

// FormatDateTimePtr safely converts a *time.Time to a string.
func FormatDateTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(validator.DateTimeLayout)
	return &s
}

// FormatTimePtr formats only the time of day of t.
func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(validator.TimeLayout)
	return &s
}

// HourMinute trims "HH:MM:SS" down to "HH:MM".
func HourMinute(hms string) string {
	if len(hms) >= 5 {
		return hms[:5]
	}
	return hms
}
