package leave

import (
	"context"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (*LeaveRequest, error)
	Update(ctx context.Context, req *LeaveRequest) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter approval.Filter) ([]LeaveRequest, int64, error)
}
