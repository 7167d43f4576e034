package outing

import "github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"

var (
	ErrOutingReportNotFound = apperror.New(apperror.KindNotFound, "outing report not found")
	ErrNotOut               = apperror.New(apperror.KindState, "only approved outings that have not returned can be completed")
	ErrNoCurrentOuting      = apperror.New(apperror.KindNotFound, "no outing in progress")
)
