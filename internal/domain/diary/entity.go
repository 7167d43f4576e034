package diary

import "time"

// Diary is one user's work log for one calendar date.
type Diary struct {
	ID           string
	UserID       string
	Date         time.Time
	Content      string
	Achievements *string
	Issues       *string
	NextPlan     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	Username *string
	RealName *string
}

// UserCount is the number of diaries one user wrote in a period.
type UserCount struct {
	UserID   string
	Username string
	RealName *string
	Count    int
}
