package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
)

type ScheduleServiceImpl struct {
	schedule.ScheduleRepository
	users user.UserRepository
	clock clock.Clock
}

func NewScheduleService(scheduleRepository schedule.ScheduleRepository, userRepository user.UserRepository, clk clock.Clock) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		ScheduleRepository: scheduleRepository,
		users:              userRepository,
		clock:              clk,
	}
}

func requireManager(ctx context.Context) (user.Principal, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return p, err
	}
	if !p.Can(user.PermissionScheduleManage) {
		return p, user.ErrAdminPrivilegeRequired
	}
	return p, nil
}

// Create implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Create(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.ScheduleResponse, error) {
	p, err := requireManager(ctx)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	date, err := req.Validate()
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	target, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("get schedule user: %w", err)
	}

	_, err = s.ScheduleRepository.GetByUserAndDate(ctx, req.UserID, date)
	if err == nil {
		return schedule.ScheduleResponse{}, schedule.ErrDuplicateSchedule
	}
	if !errors.Is(err, schedule.ErrScheduleNotFound) {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to check existing schedule: %w", err)
	}

	created, err := s.ScheduleRepository.Create(ctx, schedule.Schedule{
		UserID:     req.UserID,
		Date:       date,
		ShiftType:  schedule.ShiftType(req.ShiftType),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		BreakStart: nonEmpty(req.BreakStart),
		BreakEnd:   nonEmpty(req.BreakEnd),
		Notes:      req.Notes,
	})
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to create schedule: %w", err)
	}
	created.Username = &target.Username
	created.RealName = target.RealName

	slog.Info("schedule created", "id", created.ID, "user_id", created.UserID, "date", utils.FormatDate(date), "by", p.UserID)
	return schedule.NewScheduleResponse(created), nil
}

// Get implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Get(ctx context.Context, id string) (schedule.ScheduleResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	sch, err := s.ScheduleRepository.GetByID(ctx, id)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("get schedule: %w", err)
	}
	if sch.UserID != p.UserID && !p.Can(user.PermissionScheduleViewAll) {
		return schedule.ScheduleResponse{}, schedule.ErrNotVisible
	}
	return schedule.NewScheduleResponse(sch), nil
}

// List implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) List(ctx context.Context, filter schedule.ScheduleFilter) (schedule.ListScheduleResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return schedule.ListScheduleResponse{}, err
	}
	if scope := p.OwnerScope(user.PermissionScheduleViewAll); scope != nil {
		filter.UserID = scope
	}

	items, total, err := s.ScheduleRepository.List(ctx, filter)
	if err != nil {
		return schedule.ListScheduleResponse{}, fmt.Errorf("failed to list schedules: %w", err)
	}
	return utils.NewPage(toResponses(items), total, filter.Pagination), nil
}

// Update implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Update(ctx context.Context, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	if _, err := requireManager(ctx); err != nil {
		return schedule.ScheduleResponse{}, err
	}
	sch, err := s.ScheduleRepository.GetByID(ctx, req.ID)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("get schedule: %w", err)
	}
	if err := req.Apply(&sch); err != nil {
		return schedule.ScheduleResponse{}, err
	}
	sch.BreakStart = nonEmpty(sch.BreakStart)
	sch.BreakEnd = nonEmpty(sch.BreakEnd)

	if err := s.ScheduleRepository.Update(ctx, sch); err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to update schedule: %w", err)
	}
	return schedule.NewScheduleResponse(sch), nil
}

// Delete implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := requireManager(ctx); err != nil {
		return err
	}
	if _, err := s.ScheduleRepository.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get schedule: %w", err)
	}
	if err := s.ScheduleRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}

// MySchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) MySchedule(ctx context.Context, req schedule.PeriodRequest) (schedule.MyScheduleResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return schedule.MyScheduleResponse{}, err
	}
	from, to, err := req.Resolve(s.clock.Now())
	if err != nil {
		return schedule.MyScheduleResponse{}, err
	}

	items, err := s.ScheduleRepository.Range(ctx, &p.UserID, from, to)
	if err != nil {
		return schedule.MyScheduleResponse{}, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedule.MyScheduleResponse{
		Schedules: toResponses(items),
		StartDate: utils.FormatDate(from),
		EndDate:   utils.FormatDate(to),
	}, nil
}

// Today implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Today(ctx context.Context) (*schedule.ScheduleResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	sch, err := s.ScheduleRepository.GetByUserAndDate(ctx, p.UserID, utils.StartOfDay(s.clock.Now()))
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get today's schedule: %w", err)
	}
	resp := schedule.NewScheduleResponse(sch)
	return &resp, nil
}

// ShiftTypes implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ShiftTypes() []schedule.ShiftTypeResponse {
	types := make([]schedule.ShiftTypeResponse, 0, len(schedule.ShiftLabels))
	for _, l := range schedule.ShiftLabels {
		types = append(types, schedule.ShiftTypeResponse{Value: string(l.Value), Label: l.Label})
	}
	return types
}

// Calendar implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Calendar(ctx context.Context, month string) (schedule.CalendarResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return schedule.CalendarResponse{}, err
	}
	year, mon, err := utils.ParseMonth(month, s.clock.Now())
	if err != nil {
		return schedule.CalendarResponse{}, err
	}

	from, to := utils.MonthRange(year, mon, s.clock.Location())
	scope := p.OwnerScope(user.PermissionScheduleViewAll)
	items, err := s.ScheduleRepository.Range(ctx, scope, from, to)
	if err != nil {
		return schedule.CalendarResponse{}, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedule.BuildCalendar(utils.FormatMonth(year, mon), items, scope == nil), nil
}

func toResponses(items []schedule.Schedule) []schedule.ScheduleResponse {
	responses := make([]schedule.ScheduleResponse, 0, len(items))
	for _, sch := range items {
		responses = append(responses, schedule.NewScheduleResponse(sch))
	}
	return responses
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
