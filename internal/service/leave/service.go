package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/office-attendance-go/internal/service/workflow"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	workflow *workflow.Workflow[*leave.LeaveRequest]
	clock    clock.Clock
}

func NewLeaveService(leaveRequestRepository leave.LeaveRequestRepository, clk clock.Clock) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		workflow:               workflow.New[*leave.LeaveRequest]("leave request", leaveRequestRepository, clk),
		clock:                  clk,
	}
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := req.Validate(s.clock.Now()); err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		UserID:    p.UserID,
		LeaveType: leave.Type(req.LeaveType),
		StartDate: start,
		EndDate:   end,
		Days:      leave.CountDays(start, end),
		Reason:    req.Reason,
		Record:    approval.Record{Status: approval.StatusPending},
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("leave request submitted", "id", created.ID, "user_id", p.UserID, "days", created.Days)
	return leave.NewLeaveResponse(created), nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveResponse, error) {
	l, err := s.workflow.Get(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(*l), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter approval.Filter) (leave.ListLeaveResponse, error) {
	if err := workflow.Scope(ctx, &filter); err != nil {
		return leave.ListLeaveResponse{}, err
	}
	items, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(items))
	for _, l := range items {
		responses = append(responses, leave.NewLeaveResponse(l))
	}
	return utils.NewPage(responses, total, filter.Pagination), nil
}

// Update implements leave.LeaveService.
func (s *LeaveServiceImpl) Update(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	today := s.clock.Now()
	l, err := s.workflow.Edit(ctx, req.ID, func(l *leave.LeaveRequest) error {
		return req.Apply(l, today)
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(*l), nil
}

// Decide implements leave.LeaveService.
func (s *LeaveServiceImpl) Decide(ctx context.Context, req approval.DecideRequest) (leave.LeaveResponse, error) {
	l, err := s.workflow.Decide(ctx, req)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(*l), nil
}

// Delete implements leave.LeaveService.
func (s *LeaveServiceImpl) Delete(ctx context.Context, id string) error {
	_, err := s.workflow.Delete(ctx, id)
	return err
}

// Types implements leave.LeaveService.
func (s *LeaveServiceImpl) Types() []leave.TypeResponse {
	types := make([]leave.TypeResponse, 0, len(leave.TypeLabels))
	for _, t := range leave.TypeLabels {
		types = append(types, leave.TypeResponse{Value: string(t.Value), Label: t.Label})
	}
	return types
}
