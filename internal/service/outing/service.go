package outing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/outing"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/office-attendance-go/internal/service/workflow"
)

type OutingServiceImpl struct {
	outing.OutingReportRepository
	workflow *workflow.Workflow[*outing.OutingReport]
	clock    clock.Clock
}

func NewOutingService(outingReportRepository outing.OutingReportRepository, clk clock.Clock) outing.OutingService {
	return &OutingServiceImpl{
		OutingReportRepository: outingReportRepository,
		workflow:               workflow.New[*outing.OutingReport]("outing report", outingReportRepository, clk),
		clock:                  clk,
	}
}

// Submit implements outing.OutingService.
func (s *OutingServiceImpl) Submit(ctx context.Context, req outing.CreateOutingRequest) (outing.OutingResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return outing.OutingResponse{}, err
	}
	start, expected, err := req.Validate(s.clock.Now())
	if err != nil {
		return outing.OutingResponse{}, err
	}

	created, err := s.OutingReportRepository.Create(ctx, outing.OutingReport{
		UserID:             p.UserID,
		Destination:        req.Destination,
		Purpose:            req.Purpose,
		StartTime:          start,
		ExpectedReturnTime: expected,
		ContactInfo:        req.ContactInfo,
		Record:             approval.Record{Status: approval.StatusPending},
	})
	if err != nil {
		return outing.OutingResponse{}, fmt.Errorf("failed to create outing report: %w", err)
	}

	slog.Info("outing report submitted", "id", created.ID, "user_id", p.UserID, "destination", created.Destination)
	return outing.NewOutingResponse(created), nil
}

// Get implements outing.OutingService.
func (s *OutingServiceImpl) Get(ctx context.Context, id string) (outing.OutingResponse, error) {
	o, err := s.workflow.Get(ctx, id)
	if err != nil {
		return outing.OutingResponse{}, err
	}
	return outing.NewOutingResponse(*o), nil
}

// List implements outing.OutingService.
func (s *OutingServiceImpl) List(ctx context.Context, filter approval.Filter) (outing.ListOutingResponse, error) {
	if err := workflow.Scope(ctx, &filter); err != nil {
		return outing.ListOutingResponse{}, err
	}
	items, total, err := s.OutingReportRepository.List(ctx, filter)
	if err != nil {
		return outing.ListOutingResponse{}, fmt.Errorf("failed to list outing reports: %w", err)
	}

	responses := make([]outing.OutingResponse, 0, len(items))
	for _, o := range items {
		responses = append(responses, outing.NewOutingResponse(o))
	}
	return utils.NewPage(responses, total, filter.Pagination), nil
}

// Update implements outing.OutingService.
func (s *OutingServiceImpl) Update(ctx context.Context, req outing.UpdateOutingRequest) (outing.OutingResponse, error) {
	now := s.clock.Now()
	o, err := s.workflow.Edit(ctx, req.ID, func(o *outing.OutingReport) error {
		return req.Apply(o, now)
	})
	if err != nil {
		return outing.OutingResponse{}, err
	}
	return outing.NewOutingResponse(*o), nil
}

// Decide implements outing.OutingService.
func (s *OutingServiceImpl) Decide(ctx context.Context, req approval.DecideRequest) (outing.OutingResponse, error) {
	o, err := s.workflow.Decide(ctx, req)
	if err != nil {
		return outing.OutingResponse{}, err
	}
	return outing.NewOutingResponse(*o), nil
}

// Delete implements outing.OutingService.
func (s *OutingServiceImpl) Delete(ctx context.Context, id string) error {
	_, err := s.workflow.Delete(ctx, id)
	return err
}

// Complete implements outing.OutingService.
func (s *OutingServiceImpl) Complete(ctx context.Context, id string) (outing.OutingResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return outing.OutingResponse{}, err
	}
	o, err := s.OutingReportRepository.GetByID(ctx, id)
	if err != nil {
		return outing.OutingResponse{}, fmt.Errorf("get outing report: %w", err)
	}
	if o.UserID != p.UserID {
		return outing.OutingResponse{}, approval.ErrNotOwner
	}
	if err := o.Complete(s.clock.Now()); err != nil {
		return outing.OutingResponse{}, err
	}
	if err := s.OutingReportRepository.Update(ctx, o); err != nil {
		return outing.OutingResponse{}, fmt.Errorf("failed to complete outing report: %w", err)
	}

	slog.Info("outing completed", "id", o.ID, "user_id", p.UserID)
	return outing.NewOutingResponse(*o), nil
}

// Current implements outing.OutingService.
func (s *OutingServiceImpl) Current(ctx context.Context) (*outing.OutingResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	o, err := s.OutingReportRepository.Current(ctx, p.UserID, s.clock.Now())
	if err != nil {
		if errors.Is(err, outing.ErrNoCurrentOuting) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current outing: %w", err)
	}
	resp := outing.NewOutingResponse(o)
	return &resp, nil
}
