package schedule

import "github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"

var (
	ErrScheduleNotFound  = apperror.New(apperror.KindNotFound, "schedule not found")
	ErrDuplicateSchedule = apperror.New(apperror.KindConflict, "user already has a schedule on this date")
	ErrInvalidShiftType  = apperror.New(apperror.KindValidation, "shift_type must be one of: morning, afternoon, evening, night")
	ErrNotVisible        = apperror.New(apperror.KindForbidden, "you are not allowed to view this schedule")
)
