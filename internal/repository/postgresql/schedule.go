package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const scheduleColumns = `
	s.id, s.user_id, s.date, s.shift_type,
	to_char(s.start_time, 'HH24:MI:SS'), to_char(s.end_time, 'HH24:MI:SS'),
	to_char(s.break_start, 'HH24:MI:SS'), to_char(s.break_end, 'HH24:MI:SS'),
	s.notes, s.created_at, s.updated_at, u.username, u.real_name`

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

func scanSchedule(row pgx.Row) (schedule.Schedule, error) {
	var s schedule.Schedule
	err := row.Scan(
		&s.ID, &s.UserID, &s.Date, &s.ShiftType,
		&s.StartTime, &s.EndTime, &s.BreakStart, &s.BreakEnd,
		&s.Notes, &s.CreatedAt, &s.UpdatedAt, &s.Username, &s.RealName,
	)
	return s, err
}

func (r *scheduleRepositoryImpl) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedules (user_id, date, shift_type, start_time, end_time, break_start, break_end, notes)
		VALUES ($1, $2::date, $3, $4::time, $5::time, $6::time, $7::time, $8)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		s.UserID, dateArg(s.Date), s.ShiftType, s.StartTime, s.EndTime, s.BreakStart, s.BreakEnd, s.Notes,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "schedules_user_date_key") {
			return schedule.Schedule{}, schedule.ErrDuplicateSchedule
		}
		return schedule.Schedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}
	return s, nil
}

func (r *scheduleRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + scheduleColumns + `
		FROM schedules s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
	`
	s, err := scanSchedule(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}
	return s, nil
}

func (r *scheduleRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + scheduleColumns + `
		FROM schedules s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.user_id = $1 AND s.date = $2::date
	`
	s, err := scanSchedule(q.QueryRow(ctx, query, userID, dateArg(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule by date: %w", err)
	}
	return s, nil
}

func (r *scheduleRepositoryImpl) Update(ctx context.Context, s schedule.Schedule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedules
		SET date = $2::date, shift_type = $3, start_time = $4::time, end_time = $5::time,
			break_start = $6::time, break_end = $7::time, notes = $8, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		s.ID, dateArg(s.Date), s.ShiftType, s.StartTime, s.EndTime, s.BreakStart, s.BreakEnd, s.Notes,
	)
	if err != nil {
		if isUniqueViolation(err, "schedules_user_date_key") {
			return schedule.ErrDuplicateSchedule
		}
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}

func (r *scheduleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return schedule.ErrScheduleNotFound
		}
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}

func (r *scheduleRepositoryImpl) List(ctx context.Context, filter schedule.ScheduleFilter) ([]schedule.Schedule, int64, error) {
	q := GetQuerier(ctx, r.db)

	var c conditions
	if filter.UserID != nil && *filter.UserID != "" {
		c.add("s.user_id = $%d", *filter.UserID)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		c.add("s.date >= $%d::date", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		c.add("s.date <= $%d::date", *filter.EndDate)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM schedules s `+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count schedules: %w", err)
	}

	limit, args := c.page(filter.Pagination)
	query := fmt.Sprintf(`
		SELECT %s
		FROM schedules s
		LEFT JOIN users u ON u.id = s.user_id
		%s
		ORDER BY s.date DESC, s.start_time
		%s
	`, scheduleColumns, c.where(), limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}

func (r *scheduleRepositoryImpl) Range(ctx context.Context, userID *string, from, to time.Time) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	var c conditions
	c.add("s.date >= $%d::date", dateArg(from))
	c.add("s.date <= $%d::date", dateArg(to))
	if userID != nil {
		c.add("s.user_id = $%d", *userID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM schedules s
		LEFT JOIN users u ON u.id = s.user_id
		%s
		ORDER BY s.date, s.start_time, u.username
	`, scheduleColumns, c.where())

	rows, err := q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}
