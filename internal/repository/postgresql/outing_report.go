package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/outing"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const outingReportColumns = `
	o.id, o.user_id, o.destination, o.purpose, o.start_time, o.expected_return_time,
	o.actual_return_time, o.contact_info,
	o.status, o.approver_id, o.approved_at, o.approval_notes,
	o.created_at, o.updated_at, u.username, u.real_name`

type outingReportRepositoryImpl struct {
	db *database.DB
}

func NewOutingReportRepository(db *database.DB) outing.OutingReportRepository {
	return &outingReportRepositoryImpl{db: db}
}

func scanOutingReport(row pgx.Row) (outing.OutingReport, error) {
	var o outing.OutingReport
	err := row.Scan(
		&o.ID, &o.UserID, &o.Destination, &o.Purpose, &o.StartTime, &o.ExpectedReturnTime,
		&o.ActualReturnTime, &o.ContactInfo,
		&o.Status, &o.ApproverID, &o.ApprovedAt, &o.ApprovalNotes,
		&o.CreatedAt, &o.UpdatedAt, &o.Username, &o.RealName,
	)
	return o, err
}

func (r *outingReportRepositoryImpl) Create(ctx context.Context, report outing.OutingReport) (outing.OutingReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO outing_reports (
			user_id, destination, purpose, start_time, expected_return_time, contact_info, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		report.UserID, report.Destination, report.Purpose, report.StartTime, report.ExpectedReturnTime,
		report.ContactInfo, report.Status,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return outing.OutingReport{}, fmt.Errorf("failed to create outing report: %w", err)
	}
	return report, nil
}

func (r *outingReportRepositoryImpl) GetByID(ctx context.Context, id string) (*outing.OutingReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + outingReportColumns + `
		FROM outing_reports o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`
	o, err := scanOutingReport(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, outing.ErrOutingReportNotFound
		}
		return nil, fmt.Errorf("failed to get outing report: %w", err)
	}
	return &o, nil
}

func (r *outingReportRepositoryImpl) Update(ctx context.Context, report *outing.OutingReport) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE outing_reports
		SET destination = $2, purpose = $3, start_time = $4, expected_return_time = $5,
			actual_return_time = $6, contact_info = $7,
			status = $8, approver_id = $9, approved_at = $10, approval_notes = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query,
		report.ID, report.Destination, report.Purpose, report.StartTime, report.ExpectedReturnTime,
		report.ActualReturnTime, report.ContactInfo,
		report.Status, report.ApproverID, report.ApprovedAt, report.ApprovalNotes,
	).Scan(&report.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outing.ErrOutingReportNotFound
		}
		return fmt.Errorf("failed to update outing report: %w", err)
	}
	return nil
}

func (r *outingReportRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM outing_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete outing report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return outing.ErrOutingReportNotFound
	}
	return nil
}

func (r *outingReportRepositoryImpl) List(ctx context.Context, filter approval.Filter) ([]outing.OutingReport, int64, error) {
	q := GetQuerier(ctx, r.db)

	c := approvalConditions("o", filter)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM outing_reports o `+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count outing reports: %w", err)
	}

	limit, args := c.page(filter.Pagination)
	query := fmt.Sprintf(`
		SELECT %s
		FROM outing_reports o
		LEFT JOIN users u ON u.id = o.user_id
		%s
		ORDER BY o.start_time DESC
		%s
	`, outingReportColumns, c.where(), limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list outing reports: %w", err)
	}
	defer rows.Close()

	var reports []outing.OutingReport
	for rows.Next() {
		o, err := scanOutingReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan outing report: %w", err)
		}
		reports = append(reports, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *outingReportRepositoryImpl) Current(ctx context.Context, userID string, now time.Time) (outing.OutingReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + outingReportColumns + `
		FROM outing_reports o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.user_id = $1
		  AND o.status = $2
		  AND o.actual_return_time IS NULL
		  AND o.start_time <= $3
		ORDER BY o.start_time DESC
		LIMIT 1
	`
	o, err := scanOutingReport(q.QueryRow(ctx, query, userID, approval.StatusApproved, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outing.OutingReport{}, outing.ErrNoCurrentOuting
		}
		return outing.OutingReport{}, fmt.Errorf("failed to get current outing: %w", err)
	}
	return o, nil
}
