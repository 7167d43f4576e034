package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/setting"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	tx       database.Transactor
	settings setting.SettingService
	users    user.UserRepository
	clock    clock.Clock
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	tx database.Transactor,
	settingService setting.SettingService,
	userRepository user.UserRepository,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		tx:                   tx,
		settings:             settingService,
		users:                userRepository,
		clock:                clk,
	}
}

// policyFor loads the settings snapshot and applies the IP allow-list.
func (a *AttendanceServiceImpl) policyFor(ctx context.Context, sourceIP string) (setting.Policy, error) {
	policy, err := a.settings.Policy(ctx)
	if err != nil {
		return setting.Policy{}, err
	}
	if !policy.Gate().Allowed(sourceIP) {
		slog.Warn("clock attempt from disallowed address", "ip", sourceIP)
		return setting.Policy{}, attendance.ErrIPNotAllowed
	}
	return policy, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, sourceIP string) (attendance.ClockInResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.ClockInResponse{}, err
	}
	policy, err := a.policyFor(ctx, sourceIP)
	if err != nil {
		return attendance.ClockInResponse{}, err
	}

	now := a.clock.Now()
	today := utils.StartOfDay(now)
	status := attendance.ClockInStatus(now, policy)
	ip := sourceIP

	err = a.tx.WithTransaction(ctx, func(ctx context.Context) error {
		record, err := a.AttendanceRepository.GetByUserAndDate(ctx, p.UserID, today)
		if errors.Is(err, attendance.ErrRecordNotFound) {
			_, err = a.AttendanceRepository.Create(ctx, attendance.Record{
				UserID:    p.UserID,
				Date:      today,
				ClockIn:   &now,
				ClockInIP: &ip,
				Status:    status,
			})
			if errors.Is(err, attendance.ErrDuplicateRecord) {
				return attendance.ErrAlreadyClockedIn
			}
			return err
		}
		if err != nil {
			return err
		}
		if record.ClockIn != nil {
			return attendance.ErrAlreadyClockedIn
		}

		// A day marked absent is taken over by the clock-in.
		record.ClockIn = &now
		record.ClockInIP = &ip
		record.Status = status
		return a.AttendanceRepository.SetClockIn(ctx, record)
	})
	if err != nil {
		return attendance.ClockInResponse{}, fmt.Errorf("clock in: %w", err)
	}

	slog.Info("clocked in", "user_id", p.UserID, "status", status, "ip", sourceIP)
	return attendance.ClockInResponse{
		Date:        utils.FormatDate(today),
		ClockInTime: utils.FormatDateTime(now),
		Status:      string(status),
	}, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, sourceIP string) (attendance.ClockOutResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}
	policy, err := a.policyFor(ctx, sourceIP)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	now := a.clock.Now()
	today := utils.StartOfDay(now)
	ip := sourceIP

	var record attendance.Record
	err = a.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		record, err = a.AttendanceRepository.GetByUserAndDate(ctx, p.UserID, today)
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.ErrNoClockInRecord
		}
		if err != nil {
			return err
		}
		if record.ClockIn == nil {
			return attendance.ErrNoClockInRecord
		}
		if record.ClockOut != nil {
			return attendance.ErrAlreadyClockedOut
		}

		record.ClockOut = &now
		record.ClockOutIP = &ip
		record.WorkHours = attendance.WorkHours(*record.ClockIn, now, policy.BreakHours)
		record.Status = attendance.ClockOutStatus(record.Status, now, policy)
		return a.AttendanceRepository.SetClockOut(ctx, record)
	})
	if err != nil {
		return attendance.ClockOutResponse{}, fmt.Errorf("clock out: %w", err)
	}

	slog.Info("clocked out", "user_id", p.UserID, "status", record.Status, "work_hours", record.WorkHours)
	return attendance.ClockOutResponse{
		Date:         utils.FormatDate(today),
		ClockOutTime: utils.FormatDateTime(now),
		WorkHours:    record.WorkHours,
		Status:       string(record.Status),
	}, nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context) (attendance.RecordResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	today := utils.StartOfDay(a.clock.Now())

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, p.UserID, today)
	if errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.NotClockedIn(today), nil
	}
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}
	return attendance.NewRecordResponse(record), nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.ListRecordResponse{}, err
	}
	filter.UserID = &p.UserID
	return a.list(ctx, filter)
}

// ListAll implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAll(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordResponse, error) {
	if err := requirePermission(ctx, user.PermissionAttendanceViewAll); err != nil {
		return attendance.ListRecordResponse{}, err
	}
	return a.list(ctx, filter)
}

func (a *AttendanceServiceImpl) list(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordResponse{}, err
	}
	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewRecordResponse(r))
	}
	return utils.NewPage(responses, total, filter.Pagination), nil
}

// Statistics implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Statistics(ctx context.Context, req attendance.StatisticsRequest) (attendance.StatisticsResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.StatisticsResponse{}, err
	}
	userID := p.UserID
	return a.statistics(ctx, req.Month, &userID)
}

// AllStatistics implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) AllStatistics(ctx context.Context, req attendance.StatisticsRequest) (attendance.StatisticsResponse, error) {
	if err := requirePermission(ctx, user.PermissionAttendanceViewAll); err != nil {
		return attendance.StatisticsResponse{}, err
	}
	if req.UserID != nil && *req.UserID == "" {
		req.UserID = nil
	}
	return a.statistics(ctx, req.Month, req.UserID)
}

func (a *AttendanceServiceImpl) statistics(ctx context.Context, month string, userID *string) (attendance.StatisticsResponse, error) {
	now := a.clock.Now()
	year, m, err := utils.ParseMonth(month, now)
	if err != nil {
		return attendance.StatisticsResponse{}, err
	}
	from, to := utils.MonthRange(year, m, now.Location())

	stats, err := a.AttendanceRepository.Statistics(ctx, userID, from, to)
	if err != nil {
		return attendance.StatisticsResponse{}, fmt.Errorf("failed to compute attendance statistics: %w", err)
	}
	return attendance.NewStatisticsResponse(utils.FormatMonth(year, m), userID, stats), nil
}

// MarkAbsent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAbsent(ctx context.Context, req attendance.MarkAbsentRequest) (attendance.RecordResponse, error) {
	if err := requirePermission(ctx, user.PermissionAttendanceManage); err != nil {
		return attendance.RecordResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}
	date, err := time.ParseInLocation(validator.DateLayout, req.Date, a.clock.Location())
	if err != nil {
		return attendance.RecordResponse{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}

	target, err := a.users.GetByID(ctx, req.UserID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("get user: %w", err)
	}

	record, err := a.AttendanceRepository.Create(ctx, attendance.Record{
		UserID: target.ID,
		Date:   date,
		Status: attendance.StatusAbsent,
		Notes:  req.Notes,
	})
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to mark absent: %w", err)
	}
	record.Username = &target.Username
	record.RealName = target.RealName

	slog.Info("marked absent", "user_id", target.ID, "date", req.Date)
	return attendance.NewRecordResponse(record), nil
}

func requirePermission(ctx context.Context, permission user.Permission) error {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	if !p.Can(permission) {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}
