package expense

import (
	"context"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
)

type ExpenseReportRepository interface {
	Create(ctx context.Context, report ExpenseReport) (ExpenseReport, error)
	GetByID(ctx context.Context, id string) (*ExpenseReport, error)
	Update(ctx context.Context, report *ExpenseReport) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter approval.Filter) ([]ExpenseReport, int64, error)

	// Totals groups reports dated from..to by type and status; a nil
	// ownerID covers every user.
	Totals(ctx context.Context, ownerID *string, from, to time.Time) ([]Total, error)
}
