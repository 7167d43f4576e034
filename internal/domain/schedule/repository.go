package schedule

import (
	"context"
	"time"
)

// ScheduleRepository keeps one schedule per user and date; Create and
// Update return ErrDuplicateSchedule when that key is taken.
type ScheduleRepository interface {
	Create(ctx context.Context, s Schedule) (Schedule, error)
	GetByID(ctx context.Context, id string) (Schedule, error)
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (Schedule, error)
	Update(ctx context.Context, s Schedule) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ScheduleFilter) ([]Schedule, int64, error)

	// Range returns schedules dated from..to in date order; a nil userID
	// covers every user.
	Range(ctx context.Context, userID *string, from, to time.Time) ([]Schedule, error)
}
