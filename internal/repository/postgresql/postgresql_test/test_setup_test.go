package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/office-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// TestMain connects to TEST_DATABASE_URL and applies the schema. Without
// it every test in this package is skipped.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		fmt.Println("TEST_DATABASE_URL not set, skipping repository tests")
		os.Exit(0)
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		fmt.Println("failed to connect to test database:", err)
		os.Exit(1)
	}
	if err := db.Migrate(ctx); err != nil {
		fmt.Println("failed to migrate test database:", err)
		os.Exit(1)
	}
	testDB = db

	code := m.Run()
	db.Close()
	os.Exit(code)
}

// truncateAll empties every table between tests.
func truncateAll(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec(context.Background(), `
		TRUNCATE TABLE attendance_records, leave_requests, expense_reports, outing_reports,
			work_diaries, schedules, system_settings, users CASCADE
	`)
	require.NoError(t, err)
}

func createTestUser(t *testing.T, username string) user.User {
	t.Helper()
	hash, err := user.HashPassword("password123")
	require.NoError(t, err)

	created, err := postgresql.NewUserRepository(testDB).Create(context.Background(), user.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         user.RoleEmployee,
		IsActive:     true,
	})
	require.NoError(t, err)
	return created
}
