package attendance

import "github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"

// Attendance domain errors
var (
	ErrIPNotAllowed      = apperror.New(apperror.KindForbidden, "clock-in and clock-out are only allowed from the office network")
	ErrAlreadyClockedIn  = apperror.New(apperror.KindConflict, "you have already clocked in today")
	ErrNoClockInRecord   = apperror.New(apperror.KindState, "you have not clocked in today")
	ErrAlreadyClockedOut = apperror.New(apperror.KindConflict, "you have already clocked out today")

	ErrRecordNotFound  = apperror.New(apperror.KindNotFound, "attendance record not found")
	ErrDuplicateRecord = apperror.New(apperror.KindConflict, "an attendance record already exists for this user and date")
)
