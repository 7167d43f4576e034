package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	a.id, a.user_id, a.date, a.clock_in_time, a.clock_out_time,
	a.clock_in_ip, a.clock_out_ip, a.work_hours, a.status, a.notes,
	a.created_at, a.updated_at, u.username, u.real_name`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var r attendance.Record
	err := row.Scan(
		&r.ID, &r.UserID, &r.Date, &r.ClockIn, &r.ClockOut,
		&r.ClockInIP, &r.ClockOutIP, &r.WorkHours, &r.Status, &r.Notes,
		&r.CreatedAt, &r.UpdatedAt, &r.Username, &r.RealName,
	)
	return r, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			user_id, date, clock_in_time, clock_in_ip, work_hours, status, notes
		) VALUES ($1, $2::date, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		record.UserID, dateArg(record.Date), record.ClockIn, record.ClockInIP,
		record.WorkHours, record.Status, record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "attendance_records_user_date_key") {
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return record, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1 AND a.date = $2::date
	`
	r, err := scanRecord(q.QueryRow(ctx, query, userID, dateArg(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}
	return r, nil
}

// SetClockIn implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetClockIn(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET clock_in_time = $2, clock_in_ip = $3, status = $4, updated_at = NOW()
		WHERE id = $1 AND clock_in_time IS NULL
	`
	tag, err := q.Exec(ctx, query, record.ID, record.ClockIn, record.ClockInIP, record.Status)
	if err != nil {
		return fmt.Errorf("failed to set clock-in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyClockedIn
	}
	return nil
}

// SetClockOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetClockOut(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET clock_out_time = $2, clock_out_ip = $3, work_hours = $4, status = $5, updated_at = NOW()
		WHERE id = $1 AND clock_out_time IS NULL
	`
	tag, err := q.Exec(ctx, query, record.ID, record.ClockOut, record.ClockOutIP, record.WorkHours, record.Status)
	if err != nil {
		return fmt.Errorf("failed to set clock-out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyClockedOut
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	var c conditions
	if filter.UserID != nil && *filter.UserID != "" {
		c.add("a.user_id = $%d", *filter.UserID)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		c.add("a.date >= $%d::date", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		c.add("a.date <= $%d::date", *filter.EndDate)
	}
	if filter.Status != nil && *filter.Status != "" {
		c.add("a.status = $%d", *filter.Status)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_records a ` + c.where()
	if err := q.QueryRow(ctx, countQuery, c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	limit, args := c.page(filter.Pagination)
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.user_id
		%s
		ORDER BY a.date DESC, a.created_at DESC
		%s
	`, attendanceColumns, c.where(), limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Statistics implements attendance.AttendanceRepository.
func (a *attendanceRepository) Statistics(ctx context.Context, userID *string, from, to time.Time) (attendance.Statistics, error) {
	q := GetQuerier(ctx, a.db)

	var c conditions
	c.add("date >= $%d::date", dateArg(from))
	c.add("date <= $%d::date", dateArg(to))
	if userID != nil {
		c.add("user_id = $%d", *userID)
	}

	query := `
		SELECT COUNT(*),
			   COALESCE(SUM(work_hours), 0),
			   COUNT(*) FILTER (WHERE status = 'normal'),
			   COUNT(*) FILTER (WHERE status = 'late'),
			   COUNT(*) FILTER (WHERE status = 'early_leave'),
			   COUNT(*) FILTER (WHERE status = 'absent')
		FROM attendance_records
	` + c.where()

	var s attendance.Statistics
	err := q.QueryRow(ctx, query, c.args...).Scan(
		&s.TotalDays, &s.TotalWorkHours, &s.NormalCount, &s.LateCount, &s.EarlyLeaveCount, &s.AbsentCount,
	)
	if err != nil {
		return attendance.Statistics{}, fmt.Errorf("failed to aggregate attendance: %w", err)
	}
	return s, nil
}
