package leave

import (
	"context"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
)

type LeaveService interface {
	Submit(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	Get(ctx context.Context, id string) (LeaveResponse, error)
	List(ctx context.Context, filter approval.Filter) (ListLeaveResponse, error)
	Update(ctx context.Context, req UpdateLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, req approval.DecideRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
	Types() []TypeResponse
}
