package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/expense"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/office-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleRepository_TimesAndDuplicates(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewScheduleRepository(testDB)
	u := createTestUser(t, "alice")
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	breakStart, breakEnd := "12:00:00", "13:00:00"

	created, err := repo.Create(ctx, schedule.Schedule{
		UserID: u.ID, Date: day, ShiftType: schedule.ShiftMorning,
		StartTime: "09:00:00", EndTime: "17:00:00", BreakStart: &breakStart, BreakEnd: &breakEnd,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, schedule.Schedule{
		UserID: u.ID, Date: day, ShiftType: schedule.ShiftNight, StartTime: "22:00:00", EndTime: "06:00:00",
	})
	assert.ErrorIs(t, err, schedule.ErrDuplicateSchedule)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", got.StartTime)
	require.NotNil(t, got.BreakEnd)
	assert.Equal(t, "13:00:00", *got.BreakEnd)

	all, err := repo.Range(ctx, nil, day, day.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestExpenseRepository_Totals(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewExpenseReportRepository(testDB)
	u := createTestUser(t, "alice")
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	for _, amount := range []float64{30.1, 12.5} {
		_, err := repo.Create(ctx, expense.ExpenseReport{
			UserID: u.ID, ExpenseType: expense.TypeMeal, Amount: amount, Description: "lunch",
			ExpenseDate: day, Record: approval.Record{Status: approval.StatusPending},
		})
		require.NoError(t, err)
	}

	totals, err := repo.Totals(ctx, &u.ID, day.AddDate(0, 0, -4), day.AddDate(0, 0, 26))
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 2, totals[0].Count)
	assert.InDelta(t, 42.6, totals[0].Amount, 0.001)
}
