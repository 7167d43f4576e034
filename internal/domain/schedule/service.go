package schedule

import "context"

type ScheduleService interface {
	// Create assigns a shift (admin).
	Create(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)
	Get(ctx context.Context, id string) (ScheduleResponse, error)
	List(ctx context.Context, filter ScheduleFilter) (ListScheduleResponse, error)
	Update(ctx context.Context, req UpdateScheduleRequest) (ScheduleResponse, error)
	Delete(ctx context.Context, id string) error

	// MySchedule lists the caller's shifts in a date range, the current
	// month by default.
	MySchedule(ctx context.Context, req PeriodRequest) (MyScheduleResponse, error)

	// Today returns the caller's shift for the current date, or nil.
	Today(ctx context.Context) (*ScheduleResponse, error)

	ShiftTypes() []ShiftTypeResponse

	// Calendar groups a month's shifts by date. Admins see every user.
	Calendar(ctx context.Context, month string) (CalendarResponse, error)
}
