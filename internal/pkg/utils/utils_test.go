package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 7.92, Round2(7.916666))
	assert.Equal(t, -0.5, Round2(-0.5))
	assert.Equal(t, 1.01, Round2(1.005000001))
}

func TestSinceMidnightKeepsSeconds(t *testing.T) {
	ts := time.Date(2024, 3, 10, 9, 0, 1, 0, time.UTC)
	assert.Equal(t, 9*time.Hour+time.Second, SinceMidnight(ts))
}

func TestSinceMidnightOnDSTDays(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// spring forward: only 8h05m elapsed since midnight
	assert.Equal(t, 9*time.Hour+5*time.Minute, SinceMidnight(time.Date(2024, 3, 10, 9, 5, 0, 0, ny)))
	// fall back: 18h30m elapsed since midnight
	assert.Equal(t, 17*time.Hour+30*time.Minute, SinceMidnight(time.Date(2024, 11, 3, 17, 30, 0, 0, ny)))
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2024, time.February, time.UTC)
	assert.Equal(t, "2024-02-01", FormatDate(first))
	assert.Equal(t, "2024-02-29", FormatDate(last))
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("2024-02", time.Time{})
	assert.NoError(t, err)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.February, m)
	assert.Equal(t, "2024-02", FormatMonth(y, m))

	y, m, err = ParseMonth("", time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, "2025-11", FormatMonth(y, m))

	_, _, err = ParseMonth("2024-13", time.Time{})
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestPagination(t *testing.T) {
	p := Pagination{}
	assert.Empty(t, p.Normalize())
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)

	p = Pagination{Page: -1, Limit: 500}
	errs := p.Normalize()
	assert.Len(t, errs, 2)

	page := NewPage([]string{"a", "b"}, 22, Pagination{Page: 2, Limit: 20})
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "21-22 of 22", page.Showing)

	empty := NewPage[string](nil, 0, Pagination{Page: 1, Limit: 20})
	assert.NotNil(t, empty.Items)
	assert.Equal(t, "0-0 of 0", empty.Showing)
}

func TestHourMinute(t *testing.T) {
	assert.Equal(t, "09:30", HourMinute("09:30:00"))
	assert.Equal(t, "9", HourMinute("9"))
}
