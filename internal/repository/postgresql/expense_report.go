package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/expense"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const expenseReportColumns = `
	er.id, er.user_id, er.expense_type, er.amount::float8, er.description, er.expense_date, er.receipt_url,
	er.status, er.approver_id, er.approved_at, er.approval_notes,
	er.created_at, er.updated_at, u.username, u.real_name`

type expenseReportRepositoryImpl struct {
	db *database.DB
}

func NewExpenseReportRepository(db *database.DB) expense.ExpenseReportRepository {
	return &expenseReportRepositoryImpl{db: db}
}

func scanExpenseReport(row pgx.Row) (expense.ExpenseReport, error) {
	var e expense.ExpenseReport
	err := row.Scan(
		&e.ID, &e.UserID, &e.ExpenseType, &e.Amount, &e.Description, &e.ExpenseDate, &e.ReceiptURL,
		&e.Status, &e.ApproverID, &e.ApprovedAt, &e.ApprovalNotes,
		&e.CreatedAt, &e.UpdatedAt, &e.Username, &e.RealName,
	)
	return e, err
}

// amountArg renders a money amount for a $n::numeric parameter.
func amountArg(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func (r *expenseReportRepositoryImpl) Create(ctx context.Context, report expense.ExpenseReport) (expense.ExpenseReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expense_reports (
			user_id, expense_type, amount, description, expense_date, receipt_url, status
		) VALUES (
			$1, $2, $3::numeric, $4, $5::date, $6, $7
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		report.UserID, report.ExpenseType, amountArg(report.Amount), report.Description,
		dateArg(report.ExpenseDate), report.ReceiptURL, report.Status,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return expense.ExpenseReport{}, fmt.Errorf("failed to create expense report: %w", err)
	}
	return report, nil
}

func (r *expenseReportRepositoryImpl) GetByID(ctx context.Context, id string) (*expense.ExpenseReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + expenseReportColumns + `
		FROM expense_reports er
		LEFT JOIN users u ON u.id = er.user_id
		WHERE er.id = $1
	`
	e, err := scanExpenseReport(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, expense.ErrExpenseReportNotFound
		}
		return nil, fmt.Errorf("failed to get expense report: %w", err)
	}
	return &e, nil
}

func (r *expenseReportRepositoryImpl) Update(ctx context.Context, report *expense.ExpenseReport) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE expense_reports
		SET expense_type = $2, amount = $3::numeric, description = $4, expense_date = $5::date,
			receipt_url = $6, status = $7, approver_id = $8, approved_at = $9, approval_notes = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query,
		report.ID, report.ExpenseType, amountArg(report.Amount), report.Description, dateArg(report.ExpenseDate),
		report.ReceiptURL, report.Status, report.ApproverID, report.ApprovedAt, report.ApprovalNotes,
	).Scan(&report.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.ErrExpenseReportNotFound
		}
		return fmt.Errorf("failed to update expense report: %w", err)
	}
	return nil
}

func (r *expenseReportRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM expense_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseReportNotFound
	}
	return nil
}

func (r *expenseReportRepositoryImpl) List(ctx context.Context, filter approval.Filter) ([]expense.ExpenseReport, int64, error) {
	q := GetQuerier(ctx, r.db)

	c := approvalConditions("er", filter)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM expense_reports er `+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expense reports: %w", err)
	}

	limit, args := c.page(filter.Pagination)
	query := fmt.Sprintf(`
		SELECT %s
		FROM expense_reports er
		LEFT JOIN users u ON u.id = er.user_id
		%s
		ORDER BY er.expense_date DESC, er.created_at DESC
		%s
	`, expenseReportColumns, c.where(), limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expense reports: %w", err)
	}
	defer rows.Close()

	var reports []expense.ExpenseReport
	for rows.Next() {
		e, err := scanExpenseReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense report: %w", err)
		}
		reports = append(reports, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *expenseReportRepositoryImpl) Totals(ctx context.Context, ownerID *string, from, to time.Time) ([]expense.Total, error) {
	q := GetQuerier(ctx, r.db)

	var c conditions
	c.add("expense_date >= $%d::date", dateArg(from))
	c.add("expense_date <= $%d::date", dateArg(to))
	if ownerID != nil {
		c.add("user_id = $%d", *ownerID)
	}

	query := `
		SELECT expense_type, status, COUNT(*), COALESCE(SUM(amount), 0)::float8
		FROM expense_reports
	` + c.where() + `
		GROUP BY expense_type, status
		ORDER BY expense_type, status
	`
	rows, err := q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to total expense reports: %w", err)
	}
	defer rows.Close()

	var totals []expense.Total
	for rows.Next() {
		var t expense.Total
		if err := rows.Scan(&t.ExpenseType, &t.Status, &t.Count, &t.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
