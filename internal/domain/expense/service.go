package expense

import (
	"context"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
)

type ExpenseService interface {
	Submit(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error)
	Get(ctx context.Context, id string) (ExpenseResponse, error)
	List(ctx context.Context, filter approval.Filter) (ListExpenseResponse, error)
	Update(ctx context.Context, req UpdateExpenseRequest) (ExpenseResponse, error)
	Decide(ctx context.Context, req approval.DecideRequest) (ExpenseResponse, error)
	Delete(ctx context.Context, id string) error
	Types() []TypeResponse

	// Statistics summarises a month; admins see every user, others their own.
	Statistics(ctx context.Context, month string) (StatisticsResponse, error)
}
