package outing

import (
	"context"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
)

type OutingService interface {
	Submit(ctx context.Context, req CreateOutingRequest) (OutingResponse, error)
	Get(ctx context.Context, id string) (OutingResponse, error)
	List(ctx context.Context, filter approval.Filter) (ListOutingResponse, error)
	Update(ctx context.Context, req UpdateOutingRequest) (OutingResponse, error)
	Decide(ctx context.Context, req approval.DecideRequest) (OutingResponse, error)
	Delete(ctx context.Context, id string) error

	// Complete records the caller's return from an approved outing.
	Complete(ctx context.Context, id string) (OutingResponse, error)

	// Current returns the caller's outing in progress, or nil when there is none.
	Current(ctx context.Context) (*OutingResponse, error)
}
