package schedule

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memScheduleRepo struct {
	seq   int
	items map[string]schedule.Schedule
}

func (m *memScheduleRepo) Create(_ context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	m.seq++
	s.ID = fmt.Sprintf("s-%d", m.seq)
	m.items[s.ID] = s
	return s, nil
}

func (m *memScheduleRepo) GetByID(_ context.Context, id string) (schedule.Schedule, error) {
	s, ok := m.items[id]
	if !ok {
		return schedule.Schedule{}, schedule.ErrScheduleNotFound
	}
	return s, nil
}

func (m *memScheduleRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time) (schedule.Schedule, error) {
	for _, s := range m.items {
		if s.UserID == userID && utils.FormatDate(s.Date) == utils.FormatDate(date) {
			return s, nil
		}
	}
	return schedule.Schedule{}, schedule.ErrScheduleNotFound
}

func (m *memScheduleRepo) Update(_ context.Context, s schedule.Schedule) error {
	m.items[s.ID] = s
	return nil
}

func (m *memScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memScheduleRepo) List(_ context.Context, f schedule.ScheduleFilter) ([]schedule.Schedule, int64, error) {
	var out []schedule.Schedule
	for _, s := range m.items {
		if f.UserID == nil || s.UserID == *f.UserID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memScheduleRepo) Range(_ context.Context, userID *string, from, to time.Time) ([]schedule.Schedule, error) {
	var out []schedule.Schedule
	for _, s := range m.items {
		d := utils.FormatDate(s.Date)
		if (userID == nil || s.UserID == *userID) && d >= utils.FormatDate(from) && d <= utils.FormatDate(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

// knownUsers answers GetByID only; other methods are not used here.
type knownUsers struct {
	user.UserRepository
	ids map[string]bool
}

func (k knownUsers) GetByID(_ context.Context, id string) (user.User, error) {
	if !k.ids[id] {
		return user.User{}, user.ErrUserNotFound
	}
	return user.User{ID: id, Username: id}, nil
}

func as(id string, role user.Role) context.Context {
	return user.WithPrincipal(context.Background(), user.Principal{UserID: id, Role: role})
}

func newService() schedule.ScheduleService {
	clk := &clock.Fixed{T: time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC)}
	users := knownUsers{ids: map[string]bool{"alice": true, "bob": true}}
	return NewScheduleService(&memScheduleRepo{items: make(map[string]schedule.Schedule)}, users, clk)
}

func create(date, userID string) schedule.CreateScheduleRequest {
	return schedule.CreateScheduleRequest{
		UserID:    userID,
		Date:      date,
		ShiftType: "morning",
		StartTime: "09:00:00",
		EndTime:   "17:00:00",
	}
}

func TestCreateChecksInOrder(t *testing.T) {
	svc := newService()
	admin := as("root", user.RoleAdmin)

	bad := create("not-a-date", "ghost")
	_, err := svc.Create(as("alice", user.RoleManager), bad)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired, "role check runs before validation")

	_, err = svc.Create(admin, create("2024-03-21", "ghost"))
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = svc.Create(admin, create("2024-03-21", "alice"))
	require.NoError(t, err)

	_, err = svc.Create(admin, create("2024-03-21", "alice"))
	assert.ErrorIs(t, err, schedule.ErrDuplicateSchedule)
}

func TestCalendarScoping(t *testing.T) {
	svc := newService()
	admin := as("root", user.RoleAdmin)
	_, err := svc.Create(admin, create("2024-03-20", "alice"))
	require.NoError(t, err)
	_, err = svc.Create(admin, create("2024-03-20", "bob"))
	require.NoError(t, err)
	_, err = svc.Create(admin, create("2024-04-01", "alice"))
	require.NoError(t, err)

	all, err := svc.Calendar(admin, "2024-03")
	require.NoError(t, err)
	require.Len(t, all.Calendar["2024-03-20"], 2)
	assert.NotEmpty(t, all.Calendar["2024-03-20"][0].UserID)
	assert.NotContains(t, all.Calendar, "2024-04-01")

	own, err := svc.Calendar(as("alice", user.RoleEmployee), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", own.Month)
	require.Len(t, own.Calendar["2024-03-20"], 1)
	entry := own.Calendar["2024-03-20"][0]
	assert.Empty(t, entry.UserID)
	assert.Equal(t, "09:00", entry.StartTime)
}

func TestTodayAndMySchedule(t *testing.T) {
	svc := newService()
	alice := as("alice", user.RoleEmployee)

	today, err := svc.Today(alice)
	require.NoError(t, err)
	assert.Nil(t, today)

	_, err = svc.Create(as("root", user.RoleAdmin), create("2024-03-20", "alice"))
	require.NoError(t, err)

	today, err = svc.Today(alice)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, "morning", today.ShiftType)

	mine, err := svc.MySchedule(alice, schedule.PeriodRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", mine.StartDate)
	assert.Equal(t, "2024-03-31", mine.EndDate)
	assert.Len(t, mine.Schedules, 1)
}

func TestUpdateAndDeleteAdminOnly(t *testing.T) {
	svc := newService()
	admin := as("root", user.RoleAdmin)
	created, err := svc.Create(admin, create("2024-03-22", "alice"))
	require.NoError(t, err)

	night := "night"
	_, err = svc.Update(as("alice", user.RoleEmployee), schedule.UpdateScheduleRequest{ID: created.ID, ShiftType: &night})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	updated, err := svc.Update(admin, schedule.UpdateScheduleRequest{ID: created.ID, ShiftType: &night})
	require.NoError(t, err)
	assert.Equal(t, "night", updated.ShiftType)

	assert.ErrorIs(t, svc.Delete(as("alice", user.RoleEmployee), created.ID), user.ErrAdminPrivilegeRequired)
	require.NoError(t, svc.Delete(admin, created.ID))
	assert.ErrorIs(t, svc.Delete(admin, created.ID), schedule.ErrScheduleNotFound)
}

func TestGetVisibility(t *testing.T) {
	svc := newService()
	created, err := svc.Create(as("root", user.RoleAdmin), create("2024-03-22", "alice"))
	require.NoError(t, err)

	_, err = svc.Get(as("alice", user.RoleEmployee), created.ID)
	assert.NoError(t, err)
	_, err = svc.Get(as("bob", user.RoleEmployee), created.ID)
	assert.ErrorIs(t, err, schedule.ErrNotVisible)
}
