package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/setting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2024, 3, 11, hour, min, sec, 0, time.UTC)
}

func TestClockInStatus(t *testing.T) {
	p := setting.DefaultPolicy()
	assert.Equal(t, StatusNormal, ClockInStatus(at(8, 55, 0), p))
	assert.Equal(t, StatusNormal, ClockInStatus(at(9, 0, 0), p))
	assert.Equal(t, StatusLate, ClockInStatus(at(9, 0, 1), p))
	assert.Equal(t, StatusLate, ClockInStatus(at(9, 5, 0), p))
}

func TestClockOutStatusPrecedence(t *testing.T) {
	p := setting.DefaultPolicy()
	assert.Equal(t, StatusEarlyLeave, ClockOutStatus(StatusNormal, at(17, 30, 0), p))
	assert.Equal(t, StatusEarlyLeave, ClockOutStatus(StatusLate, at(17, 59, 59), p))
	assert.Equal(t, StatusLate, ClockOutStatus(StatusLate, at(18, 0, 0), p))
	assert.Equal(t, StatusNormal, ClockOutStatus(StatusNormal, at(19, 0, 0), p))
}

func TestStatusOnDSTDays(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	p := setting.DefaultPolicy()

	assert.Equal(t, StatusLate, ClockInStatus(time.Date(2024, 3, 10, 9, 5, 0, 0, ny), p))
	assert.Equal(t, StatusNormal, ClockInStatus(time.Date(2024, 3, 10, 8, 55, 0, 0, ny), p))
	assert.Equal(t, StatusEarlyLeave, ClockOutStatus(StatusNormal, time.Date(2024, 11, 3, 17, 30, 0, 0, ny), p))
	assert.Equal(t, StatusNormal, ClockOutStatus(StatusNormal, time.Date(2024, 11, 3, 18, 0, 0, 0, ny), p))
}

func TestWorkHours(t *testing.T) {
	assert.Equal(t, 7.92, WorkHours(at(9, 5, 0), at(18, 0, 0), 1.0))
	assert.Equal(t, 8.0, WorkHours(at(9, 0, 0), at(18, 0, 0), 1.0))
	// Shorter than the break: stored negative, not clamped.
	assert.Equal(t, -0.5, WorkHours(at(9, 0, 0), at(9, 30, 0), 1.0))
}
