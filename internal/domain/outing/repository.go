package outing

import (
	"context"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
)

type OutingReportRepository interface {
	Create(ctx context.Context, report OutingReport) (OutingReport, error)
	GetByID(ctx context.Context, id string) (*OutingReport, error)
	Update(ctx context.Context, report *OutingReport) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter approval.Filter) ([]OutingReport, int64, error)

	// Current returns the user's latest approved outing that started at or
	// before now and has no return time, or ErrNoCurrentOuting.
	Current(ctx context.Context, userID string, now time.Time) (OutingReport, error)
}
