package attendance

import (
	"context"
	"time"
)

// AttendanceRepository stores at most one record per user and date; Create
// returns ErrDuplicateRecord when that key is taken.
type AttendanceRepository interface {
	Create(ctx context.Context, record Record) (Record, error)

	// GetByUserAndDate returns ErrRecordNotFound when the day has no row.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (Record, error)

	// SetClockIn writes the clock-in fields only if clock-in is still unset,
	// otherwise it returns ErrAlreadyClockedIn.
	SetClockIn(ctx context.Context, record Record) error

	// SetClockOut writes the clock-out fields only if clock-out is still
	// unset, otherwise it returns ErrAlreadyClockedOut.
	SetClockOut(ctx context.Context, record Record) error

	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)

	// Statistics aggregates records dated from..to inclusive; a nil userID
	// covers every user.
	Statistics(ctx context.Context, userID *string, from, to time.Time) (Statistics, error)
}
