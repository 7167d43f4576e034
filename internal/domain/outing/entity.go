package outing

import (
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
)

type OutingReport struct {
	ID                 string
	UserID             string
	Destination        string
	Purpose            string
	StartTime          time.Time
	ExpectedReturnTime time.Time
	ActualReturnTime   *time.Time
	ContactInfo        *string
	approval.Record
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	Username *string
	RealName *string
}

func (o *OutingReport) Owner() string {
	return o.UserID
}

func (o *OutingReport) Approval() *approval.Record {
	return &o.Record
}

// Complete marks an approved outing as returned at the given instant.
func (o *OutingReport) Complete(at time.Time) error {
	if o.Status != approval.StatusApproved || o.ActualReturnTime != nil {
		return ErrNotOut
	}
	o.ActualReturnTime = &at
	o.Status = approval.StatusCompleted
	return nil
}
