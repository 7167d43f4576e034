package diary

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/diary"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memDiaryRepo struct {
	seq   int
	items map[string]diary.Diary
}

func (m *memDiaryRepo) Create(_ context.Context, d diary.Diary) (diary.Diary, error) {
	for _, existing := range m.items {
		if existing.UserID == d.UserID && utils.FormatDate(existing.Date) == utils.FormatDate(d.Date) {
			return diary.Diary{}, diary.ErrDiaryExists
		}
	}
	m.seq++
	d.ID = fmt.Sprintf("d-%d", m.seq)
	m.items[d.ID] = d
	return d, nil
}

func (m *memDiaryRepo) GetByID(_ context.Context, id string) (diary.Diary, error) {
	d, ok := m.items[id]
	if !ok {
		return diary.Diary{}, diary.ErrDiaryNotFound
	}
	return d, nil
}

func (m *memDiaryRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time) (diary.Diary, error) {
	for _, d := range m.items {
		if d.UserID == userID && utils.FormatDate(d.Date) == utils.FormatDate(date) {
			return d, nil
		}
	}
	return diary.Diary{}, diary.ErrDiaryNotFound
}

func (m *memDiaryRepo) Update(_ context.Context, d diary.Diary) error {
	m.items[d.ID] = d
	return nil
}

func (m *memDiaryRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memDiaryRepo) List(_ context.Context, f diary.DiaryFilter) ([]diary.Diary, int64, error) {
	var out []diary.Diary
	for _, d := range m.items {
		if f.UserID == nil || d.UserID == *f.UserID {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memDiaryRepo) CountByUser(_ context.Context, userID *string, _, _ time.Time) ([]diary.UserCount, error) {
	counts := make(map[string]int)
	for _, d := range m.items {
		if userID == nil || d.UserID == *userID {
			counts[d.UserID]++
		}
	}
	var out []diary.UserCount
	for id, n := range counts {
		out = append(out, diary.UserCount{UserID: id, Username: id, Count: n})
	}
	return out, nil
}

func as(id string, role user.Role) context.Context {
	return user.WithPrincipal(context.Background(), user.Principal{UserID: id, Role: role})
}

func newService() (diary.DiaryService, *clock.Fixed) {
	clk := &clock.Fixed{T: time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC)}
	return NewDiaryService(&memDiaryRepo{items: make(map[string]diary.Diary)}, clk), clk
}

func TestOneDiaryPerDay(t *testing.T) {
	svc, _ := newService()
	ctx := as("alice", user.RoleEmployee)

	_, err := svc.Create(ctx, diary.CreateDiaryRequest{Content: "first"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, diary.CreateDiaryRequest{Date: "2024-03-15", Content: "second"})
	assert.ErrorIs(t, err, diary.ErrDiaryExists)
}

func TestEditOnlySameDay(t *testing.T) {
	svc, clk := newService()
	ctx := as("alice", user.RoleEmployee)

	d, err := svc.Create(ctx, diary.CreateDiaryRequest{Content: "draft"})
	require.NoError(t, err)

	content := "final"
	_, err = svc.Update(as("bob", user.RoleEmployee), diary.UpdateDiaryRequest{ID: d.ID, Content: &content})
	assert.ErrorIs(t, err, diary.ErrNotOwner)

	updated, err := svc.Update(ctx, diary.UpdateDiaryRequest{ID: d.ID, Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)

	clk.Set(clk.T.Add(24 * time.Hour))
	_, err = svc.Update(ctx, diary.UpdateDiaryRequest{ID: d.ID, Content: &content})
	assert.ErrorIs(t, err, diary.ErrNotEditableDay)
	assert.ErrorIs(t, svc.Delete(ctx, d.ID), diary.ErrNotEditableDay)
}

func TestTodayAndVisibility(t *testing.T) {
	svc, _ := newService()
	ctx := as("alice", user.RoleEmployee)

	today, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Nil(t, today)

	d, err := svc.Create(ctx, diary.CreateDiaryRequest{Content: "notes"})
	require.NoError(t, err)

	today, err = svc.Today(ctx)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, d.ID, today.ID)

	_, err = svc.Get(as("bob", user.RoleEmployee), d.ID)
	assert.ErrorIs(t, err, diary.ErrNotVisible)
	_, err = svc.Get(as("root", user.RoleAdmin), d.ID)
	assert.NoError(t, err)
}

func TestListAndStatisticsScope(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Create(as("alice", user.RoleEmployee), diary.CreateDiaryRequest{Content: "a"})
	require.NoError(t, err)
	_, err = svc.Create(as("alice", user.RoleEmployee), diary.CreateDiaryRequest{Date: "2024-03-14", Content: "b"})
	require.NoError(t, err)
	_, err = svc.Create(as("bob", user.RoleEmployee), diary.CreateDiaryRequest{Content: "c"})
	require.NoError(t, err)

	bob := "bob"
	own, err := svc.List(as("alice", user.RoleEmployee), diary.DiaryFilter{UserID: &bob})
	require.NoError(t, err)
	assert.EqualValues(t, 2, own.TotalCount, "user_id is ignored for non-admins")

	stats, err := svc.Statistics(as("alice", user.RoleEmployee), "")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCount)
	assert.Empty(t, stats.ByUser)

	all, err := svc.Statistics(as("root", user.RoleAdmin), "2024-03")
	require.NoError(t, err)
	assert.Equal(t, 3, all.TotalCount)
	assert.Len(t, all.ByUser, 2)
}
