package attendance

import (
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/setting"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
)

type Status string

const (
	StatusNormal     Status = "normal"
	StatusLate       Status = "late"
	StatusEarlyLeave Status = "early_leave"
	StatusAbsent     Status = "absent"

	// StatusNotClockedIn is only ever synthesized for a day without a record.
	StatusNotClockedIn Status = "not_clocked_in"
)

// Statuses are the stored values.
var Statuses = []string{string(StatusNormal), string(StatusLate), string(StatusEarlyLeave), string(StatusAbsent)}

// Record is one user's attendance for one calendar date.
type Record struct {
	ID         string
	UserID     string
	Date       time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	ClockInIP  *string
	ClockOutIP *string
	WorkHours  float64
	Status     Status
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	Username *string
	RealName *string
}

// ClockInStatus is late when the time of day is strictly after the
// configured start, seconds included.
func ClockInStatus(now time.Time, p setting.Policy) Status {
	if utils.SinceMidnight(now) > p.WorkStart {
		return StatusLate
	}
	return StatusNormal
}

// ClockOutStatus turns the day into early_leave when leaving before the
// configured end; otherwise the status set at clock-in stands.
func ClockOutStatus(current Status, now time.Time, p setting.Policy) Status {
	if utils.SinceMidnight(now) < p.WorkEnd {
		return StatusEarlyLeave
	}
	return current
}

// WorkHours is the worked span minus the break, rounded to two decimals.
// It goes negative when the span is shorter than the break.
func WorkHours(clockIn, clockOut time.Time, breakHours float64) float64 {
	return utils.Round2(clockOut.Sub(clockIn).Hours() - breakHours)
}

// Statistics aggregates a set of records by status.
type Statistics struct {
	TotalDays       int
	TotalWorkHours  float64
	NormalCount     int
	LateCount       int
	EarlyLeaveCount int
	AbsentCount     int
}
