package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/diary"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const diaryColumns = `
	d.id, d.user_id, d.date, d.content, d.achievements, d.issues, d.next_plan,
	d.created_at, d.updated_at, u.username, u.real_name`

type diaryRepositoryImpl struct {
	db *database.DB
}

func NewDiaryRepository(db *database.DB) diary.DiaryRepository {
	return &diaryRepositoryImpl{db: db}
}

func scanDiary(row pgx.Row) (diary.Diary, error) {
	var d diary.Diary
	err := row.Scan(
		&d.ID, &d.UserID, &d.Date, &d.Content, &d.Achievements, &d.Issues, &d.NextPlan,
		&d.CreatedAt, &d.UpdatedAt, &d.Username, &d.RealName,
	)
	return d, err
}

func (r *diaryRepositoryImpl) Create(ctx context.Context, d diary.Diary) (diary.Diary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_diaries (user_id, date, content, achievements, issues, next_plan)
		VALUES ($1, $2::date, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		d.UserID, dateArg(d.Date), d.Content, d.Achievements, d.Issues, d.NextPlan,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "work_diaries_user_date_key") {
			return diary.Diary{}, diary.ErrDiaryExists
		}
		return diary.Diary{}, fmt.Errorf("failed to create diary: %w", err)
	}
	return d, nil
}

func (r *diaryRepositoryImpl) GetByID(ctx context.Context, id string) (diary.Diary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + diaryColumns + `
		FROM work_diaries d
		LEFT JOIN users u ON u.id = d.user_id
		WHERE d.id = $1
	`
	d, err := scanDiary(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return diary.Diary{}, diary.ErrDiaryNotFound
		}
		return diary.Diary{}, fmt.Errorf("failed to get diary: %w", err)
	}
	return d, nil
}

func (r *diaryRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (diary.Diary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + diaryColumns + `
		FROM work_diaries d
		LEFT JOIN users u ON u.id = d.user_id
		WHERE d.user_id = $1 AND d.date = $2::date
	`
	d, err := scanDiary(q.QueryRow(ctx, query, userID, dateArg(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return diary.Diary{}, diary.ErrDiaryNotFound
		}
		return diary.Diary{}, fmt.Errorf("failed to get diary by date: %w", err)
	}
	return d, nil
}

func (r *diaryRepositoryImpl) Update(ctx context.Context, d diary.Diary) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_diaries
		SET content = $2, achievements = $3, issues = $4, next_plan = $5, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, d.ID, d.Content, d.Achievements, d.Issues, d.NextPlan)
	if err != nil {
		return fmt.Errorf("failed to update diary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return diary.ErrDiaryNotFound
	}
	return nil
}

func (r *diaryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_diaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete diary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return diary.ErrDiaryNotFound
	}
	return nil
}

func (r *diaryRepositoryImpl) List(ctx context.Context, filter diary.DiaryFilter) ([]diary.Diary, int64, error) {
	q := GetQuerier(ctx, r.db)

	var c conditions
	if filter.UserID != nil && *filter.UserID != "" {
		c.add("d.user_id = $%d", *filter.UserID)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		c.add("d.date >= $%d::date", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		c.add("d.date <= $%d::date", *filter.EndDate)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM work_diaries d `+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count diaries: %w", err)
	}

	limit, args := c.page(filter.Pagination)
	query := fmt.Sprintf(`
		SELECT %s
		FROM work_diaries d
		LEFT JOIN users u ON u.id = d.user_id
		%s
		ORDER BY d.date DESC, d.created_at DESC
		%s
	`, diaryColumns, c.where(), limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list diaries: %w", err)
	}
	defer rows.Close()

	var diaries []diary.Diary
	for rows.Next() {
		d, err := scanDiary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan diary: %w", err)
		}
		diaries = append(diaries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return diaries, total, nil
}

func (r *diaryRepositoryImpl) CountByUser(ctx context.Context, userID *string, from, to time.Time) ([]diary.UserCount, error) {
	q := GetQuerier(ctx, r.db)

	var c conditions
	c.add("d.date >= $%d::date", dateArg(from))
	c.add("d.date <= $%d::date", dateArg(to))
	if userID != nil {
		c.add("d.user_id = $%d", *userID)
	}

	query := `
		SELECT d.user_id, u.username, u.real_name, COUNT(*)
		FROM work_diaries d
		JOIN users u ON u.id = d.user_id
	` + c.where() + `
		GROUP BY d.user_id, u.username, u.real_name
		ORDER BY COUNT(*) DESC, u.username
	`
	rows, err := q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count diaries: %w", err)
	}
	defer rows.Close()

	var counts []diary.UserCount
	for rows.Next() {
		var uc diary.UserCount
		if err := rows.Scan(&uc.UserID, &uc.Username, &uc.RealName, &uc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan diary count: %w", err)
		}
		counts = append(counts, uc)
	}
	return counts, rows.Err()
}
