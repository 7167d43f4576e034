package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/setting"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memAttendance struct {
	seq     int
	records map[string]attendance.Record
}

func key(userID string, date time.Time) string {
	return userID + "/" + utils.FormatDate(date)
}

func (m *memAttendance) Create(_ context.Context, r attendance.Record) (attendance.Record, error) {
	if _, ok := m.records[key(r.UserID, r.Date)]; ok {
		return attendance.Record{}, attendance.ErrDuplicateRecord
	}
	m.seq++
	r.ID = fmt.Sprintf("rec-%d", m.seq)
	m.records[key(r.UserID, r.Date)] = r
	return r, nil
}

func (m *memAttendance) GetByUserAndDate(_ context.Context, userID string, date time.Time) (attendance.Record, error) {
	r, ok := m.records[key(userID, date)]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return r, nil
}

func (m *memAttendance) SetClockIn(_ context.Context, r attendance.Record) error {
	if m.records[key(r.UserID, r.Date)].ClockIn != nil {
		return attendance.ErrAlreadyClockedIn
	}
	m.records[key(r.UserID, r.Date)] = r
	return nil
}

func (m *memAttendance) SetClockOut(_ context.Context, r attendance.Record) error {
	if m.records[key(r.UserID, r.Date)].ClockOut != nil {
		return attendance.ErrAlreadyClockedOut
	}
	m.records[key(r.UserID, r.Date)] = r
	return nil
}

func (m *memAttendance) List(_ context.Context, f attendance.RecordFilter) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, r := range m.records {
		if f.UserID != nil && r.UserID != *f.UserID {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (m *memAttendance) Statistics(_ context.Context, userID *string, from, to time.Time) (attendance.Statistics, error) {
	var s attendance.Statistics
	for _, r := range m.records {
		if userID != nil && r.UserID != *userID {
			continue
		}
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		s.TotalDays++
		s.TotalWorkHours += r.WorkHours
		switch r.Status {
		case attendance.StatusNormal:
			s.NormalCount++
		case attendance.StatusLate:
			s.LateCount++
		case attendance.StatusEarlyLeave:
			s.EarlyLeaveCount++
		case attendance.StatusAbsent:
			s.AbsentCount++
		}
	}
	return s, nil
}

type inlineTx struct{}

func (inlineTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedSettings struct {
	setting.SettingService
	policy setting.Policy
}

func (f *fixedSettings) Policy(context.Context) (setting.Policy, error) {
	return f.policy, nil
}

type knownUsers struct {
	user.UserRepository
}

func (knownUsers) GetByID(_ context.Context, id string) (user.User, error) {
	if id == "ghost" {
		return user.User{}, user.ErrUserNotFound
	}
	return user.User{ID: id, Username: id}, nil
}

type fixture struct {
	svc      attendance.AttendanceService
	repo     *memAttendance
	settings *fixedSettings
	clk      *clock.Fixed
}

func newFixture() fixture {
	repo := &memAttendance{records: make(map[string]attendance.Record)}
	settings := &fixedSettings{policy: setting.DefaultPolicy()}
	clk := &clock.Fixed{T: at(9, 5, 0)}
	return fixture{
		svc:      NewAttendanceService(repo, inlineTx{}, settings, knownUsers{}, clk),
		repo:     repo,
		settings: settings,
		clk:      clk,
	}
}

func at(hour, min, sec int) time.Time {
	return time.Date(2024, 3, 11, hour, min, sec, 0, time.UTC)
}

func as(id string, role user.Role) context.Context {
	return user.WithPrincipal(context.Background(), user.Principal{UserID: id, Role: role})
}

func TestLateClockInThenFullDay(t *testing.T) {
	f := newFixture()
	ctx := as("alice", user.RoleEmployee)

	in, err := f.svc.ClockIn(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "late", in.Status)
	assert.Equal(t, "2024-03-11", in.Date)
	assert.Equal(t, "2024-03-11 09:05:00", in.ClockInTime)

	f.clk.Set(at(18, 0, 0))
	out, err := f.svc.ClockOut(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 7.92, out.WorkHours)
	assert.Equal(t, "late", out.Status)

	stored := f.repo.records[key("alice", at(0, 0, 0))]
	require.NotNil(t, stored.ClockOutIP)
	assert.Equal(t, "10.0.0.1", *stored.ClockOutIP)
}

func TestEarlyLeaveOverridesNormal(t *testing.T) {
	f := newFixture()
	ctx := as("alice", user.RoleEmployee)
	f.clk.Set(at(9, 0, 0))

	in, err := f.svc.ClockIn(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "normal", in.Status)

	f.clk.Set(at(17, 30, 0))
	out, err := f.svc.ClockOut(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "early_leave", out.Status)
	assert.Equal(t, 7.5, out.WorkHours)
}

func TestNegativeWorkHoursStored(t *testing.T) {
	f := newFixture()
	ctx := as("alice", user.RoleEmployee)
	f.clk.Set(at(9, 0, 0))
	_, err := f.svc.ClockIn(ctx, "10.0.0.1")
	require.NoError(t, err)

	f.clk.Set(at(9, 30, 0))
	out, err := f.svc.ClockOut(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, -0.5, out.WorkHours)
}

func TestClockStateErrors(t *testing.T) {
	f := newFixture()
	ctx := as("alice", user.RoleEmployee)

	_, err := f.svc.ClockOut(ctx, "10.0.0.1")
	assert.ErrorIs(t, err, attendance.ErrNoClockInRecord)

	_, err = f.svc.ClockIn(ctx, "10.0.0.1")
	require.NoError(t, err)
	_, err = f.svc.ClockIn(ctx, "10.0.0.1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	f.clk.Set(at(18, 30, 0))
	_, err = f.svc.ClockOut(ctx, "10.0.0.1")
	require.NoError(t, err)
	_, err = f.svc.ClockOut(ctx, "10.0.0.1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestIPGate(t *testing.T) {
	f := newFixture()
	ctx := as("alice", user.RoleEmployee)
	allowed := "10.0.0.0/8"
	f.settings.policy.AllowedIPs = &allowed

	_, err := f.svc.ClockIn(ctx, "192.168.1.20")
	assert.ErrorIs(t, err, attendance.ErrIPNotAllowed)
	assert.Empty(t, f.repo.records)

	_, err = f.svc.ClockIn(ctx, "10.20.30.40")
	assert.NoError(t, err)
}

func TestIPGateUnsetAllowsAnySource(t *testing.T) {
	f := newFixture()
	_, err := f.svc.ClockIn(as("alice", user.RoleEmployee), "203.0.113.77")
	assert.NoError(t, err)
}

func TestTodayPlaceholder(t *testing.T) {
	f := newFixture()
	today, err := f.svc.Today(as("alice", user.RoleEmployee))
	require.NoError(t, err)
	assert.Equal(t, "not_clocked_in", today.Status)
	assert.Equal(t, "2024-03-11", today.Date)
	assert.Zero(t, today.WorkHours)
	assert.Nil(t, today.ClockInTime)
}

func TestMarkAbsentThenClockInUpdatesRow(t *testing.T) {
	f := newFixture()
	admin := as("root", user.RoleAdmin)

	_, err := f.svc.MarkAbsent(as("alice", user.RoleEmployee), attendance.MarkAbsentRequest{UserID: "alice", Date: "2024-03-11"})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	_, err = f.svc.MarkAbsent(admin, attendance.MarkAbsentRequest{UserID: "ghost", Date: "2024-03-11"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	absent, err := f.svc.MarkAbsent(admin, attendance.MarkAbsentRequest{UserID: "alice", Date: "2024-03-11"})
	require.NoError(t, err)
	assert.Equal(t, "absent", absent.Status)

	_, err = f.svc.MarkAbsent(admin, attendance.MarkAbsentRequest{UserID: "alice", Date: "2024-03-11"})
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)

	in, err := f.svc.ClockIn(as("alice", user.RoleEmployee), "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "late", in.Status)
	assert.Len(t, f.repo.records, 1)
	assert.Equal(t, absent.ID, f.repo.records[key("alice", at(0, 0, 0))].ID)
}

func TestStatistics(t *testing.T) {
	f := newFixture()
	alice := as("alice", user.RoleEmployee)
	_, err := f.svc.ClockIn(alice, "10.0.0.1")
	require.NoError(t, err)
	f.clk.Set(at(18, 0, 0))
	_, err = f.svc.ClockOut(alice, "10.0.0.1")
	require.NoError(t, err)

	_, err = f.svc.ClockIn(as("bob", user.RoleEmployee), "10.0.0.2")
	require.NoError(t, err)

	own, err := f.svc.Statistics(alice, attendance.StatisticsRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03", own.Month)
	assert.Equal(t, 1, own.TotalDays)
	assert.Equal(t, 1, own.LateCount)
	assert.Equal(t, 7.92, own.TotalWorkHours)

	_, err = f.svc.Statistics(alice, attendance.StatisticsRequest{Month: "March"})
	assert.ErrorIs(t, err, utils.ErrInvalidMonth)

	_, err = f.svc.AllStatistics(alice, attendance.StatisticsRequest{})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	all, err := f.svc.AllStatistics(as("root", user.RoleAdmin), attendance.StatisticsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalDays)
	assert.Nil(t, all.UserID)

	empty, err := f.svc.Statistics(alice, attendance.StatisticsRequest{Month: "2024-02"})
	require.NoError(t, err)
	assert.Zero(t, empty.TotalDays)
}

func TestHistoryIsScopedToCaller(t *testing.T) {
	f := newFixture()
	_, err := f.svc.ClockIn(as("alice", user.RoleEmployee), "10.0.0.1")
	require.NoError(t, err)
	_, err = f.svc.ClockIn(as("bob", user.RoleEmployee), "10.0.0.1")
	require.NoError(t, err)

	other := "bob"
	page, err := f.svc.History(as("alice", user.RoleEmployee), attendance.RecordFilter{UserID: &other})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "alice", page.Items[0].UserID)

	_, err = f.svc.ListAll(as("alice", user.RoleEmployee), attendance.RecordFilter{})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	all, err := f.svc.ListAll(as("root", user.RoleAdmin), attendance.RecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalCount)
}
