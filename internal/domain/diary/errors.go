package diary

import "github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"

var (
	ErrDiaryNotFound  = apperror.New(apperror.KindNotFound, "diary not found")
	ErrDiaryExists    = apperror.New(apperror.KindConflict, "a diary for this date already exists")
	ErrNotOwner       = apperror.New(apperror.KindForbidden, "you can only modify your own diaries")
	ErrNotVisible     = apperror.New(apperror.KindForbidden, "you are not allowed to view this diary")
	ErrNotEditableDay = apperror.New(apperror.KindState, "only today's diary can be changed")
)
