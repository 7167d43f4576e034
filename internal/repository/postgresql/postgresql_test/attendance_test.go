package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_OneRecordPerDay(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB)
	u := createTestUser(t, "alice")

	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	in := time.Date(2024, 3, 11, 9, 5, 0, 0, time.UTC)
	ip := "10.0.0.1"

	created, err := repo.Create(ctx, attendance.Record{
		UserID: u.ID, Date: day, ClockIn: &in, ClockInIP: &ip, Status: attendance.StatusLate,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Record{UserID: u.ID, Date: day, Status: attendance.StatusAbsent})
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)

	got, err := repo.GetByUserAndDate(ctx, u.ID, day)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "2024-03-11", got.Date.Format("2006-01-02"))
	require.NotNil(t, got.Username)
	assert.Equal(t, "alice", *got.Username)

	out := time.Date(2024, 3, 11, 18, 0, 0, 0, time.UTC)
	got.ClockOut = &out
	got.ClockOutIP = &ip
	got.WorkHours = 7.92
	require.NoError(t, repo.SetClockOut(ctx, got))
	assert.ErrorIs(t, repo.SetClockOut(ctx, got), attendance.ErrAlreadyClockedOut)

	stats, err := repo.Statistics(ctx, &u.ID, day.AddDate(0, 0, -10), day.AddDate(0, 0, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalDays)
	assert.Equal(t, 1, stats.LateCount)
	assert.InDelta(t, 7.92, stats.TotalWorkHours, 0.001)
}

func TestAttendanceRepository_SetClockInOnAbsentDay(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB)
	u := createTestUser(t, "alice")
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

	absent, err := repo.Create(ctx, attendance.Record{UserID: u.ID, Date: day, Status: attendance.StatusAbsent})
	require.NoError(t, err)

	in := time.Date(2024, 3, 12, 8, 50, 0, 0, time.UTC)
	absent.ClockIn = &in
	absent.Status = attendance.StatusNormal
	require.NoError(t, repo.SetClockIn(ctx, absent))
	assert.ErrorIs(t, repo.SetClockIn(ctx, absent), attendance.ErrAlreadyClockedIn)

	_, err = repo.GetByUserAndDate(ctx, u.ID, day.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestTransactorRollsBack(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB)
	tx := postgresql.NewTransactor(testDB)
	u := createTestUser(t, "alice")
	day := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)

	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, attendance.Record{UserID: u.ID, Date: day, Status: attendance.StatusAbsent}); err != nil {
			return err
		}
		return attendance.ErrAlreadyClockedIn
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	_, err = repo.GetByUserAndDate(ctx, u.ID, day)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}
