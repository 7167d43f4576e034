package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
// The caller is taken from the context.
type AttendanceService interface {
	// ClockIn records the start of the caller's day from sourceIP.
	ClockIn(ctx context.Context, sourceIP string) (ClockInResponse, error)

	// ClockOut records the end of the caller's day from sourceIP.
	ClockOut(ctx context.Context, sourceIP string) (ClockOutResponse, error)

	// Today returns the caller's record for the current date, or a
	// not_clocked_in placeholder.
	Today(ctx context.Context) (RecordResponse, error)

	// History lists the caller's own records, newest first.
	History(ctx context.Context, filter RecordFilter) (ListRecordResponse, error)

	// Statistics summarises the caller's own month.
	Statistics(ctx context.Context, req StatisticsRequest) (StatisticsResponse, error)

	// ListAll lists every user's records (admin).
	ListAll(ctx context.Context, filter RecordFilter) (ListRecordResponse, error)

	// AllStatistics summarises a month across users, optionally one user (admin).
	AllStatistics(ctx context.Context, req StatisticsRequest) (StatisticsResponse, error)

	// MarkAbsent records an absent day for a user (admin).
	MarkAbsent(ctx context.Context, req MarkAbsentRequest) (RecordResponse, error)
}
