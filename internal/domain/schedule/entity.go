package schedule

import "time"

type ShiftType string

const (
	ShiftMorning   ShiftType = "morning"
	ShiftAfternoon ShiftType = "afternoon"
	ShiftEvening   ShiftType = "evening"
	ShiftNight     ShiftType = "night"
)

var ShiftLabels = []struct {
	Value ShiftType
	Label string
}{
	{ShiftMorning, "Morning shift"},
	{ShiftAfternoon, "Afternoon shift"},
	{ShiftEvening, "Evening shift"},
	{ShiftNight, "Night shift"},
}

func (s ShiftType) Valid() bool {
	for _, l := range ShiftLabels {
		if l.Value == s {
			return true
		}
	}
	return false
}

// Schedule assigns one shift to one user on one date. Times of day are
// kept as "HH:MM:SS"; a night shift may end before it starts.
type Schedule struct {
	ID         string
	UserID     string
	Date       time.Time
	ShiftType  ShiftType
	StartTime  string
	EndTime    string
	BreakStart *string
	BreakEnd   *string
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	Username *string
	RealName *string
}
