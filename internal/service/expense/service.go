package expense

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/expense"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/office-attendance-go/internal/service/file"
	"github.com/cmlabs-hris/office-attendance-go/internal/service/workflow"
)

type ExpenseServiceImpl struct {
	expense.ExpenseReportRepository
	fileService file.FileService
	workflow    *workflow.Workflow[*expense.ExpenseReport]
	clock       clock.Clock
}

func NewExpenseService(expenseReportRepository expense.ExpenseReportRepository, fileService file.FileService, clk clock.Clock) expense.ExpenseService {
	return &ExpenseServiceImpl{
		ExpenseReportRepository: expenseReportRepository,
		fileService:             fileService,
		workflow:                workflow.New[*expense.ExpenseReport]("expense report", expenseReportRepository, clk),
		clock:                   clk,
	}
}

// Submit implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Submit(ctx context.Context, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	if err := req.Validate(s.clock.Now()); err != nil {
		return expense.ExpenseResponse{}, err
	}

	date, _ := validator.IsValidDate(req.ExpenseDate)
	report := expense.ExpenseReport{
		UserID:      p.UserID,
		ExpenseType: expense.Type(req.ExpenseType),
		Amount:      utils.Round2(req.Amount),
		Description: req.Description,
		ExpenseDate: date,
		Record:      approval.Record{Status: approval.StatusPending},
	}
	if req.Receipt != nil {
		url, err := s.uploadReceipt(ctx, p.UserID, req.Receipt)
		if err != nil {
			return expense.ExpenseResponse{}, err
		}
		report.ReceiptURL = &url
	}

	created, err := s.ExpenseReportRepository.Create(ctx, report)
	if err != nil {
		if report.ReceiptURL != nil {
			s.discardReceipt(ctx, *report.ReceiptURL)
		}
		return expense.ExpenseResponse{}, fmt.Errorf("failed to create expense report: %w", err)
	}

	slog.Info("expense report submitted", "id", created.ID, "user_id", p.UserID, "amount", created.Amount)
	return expense.NewExpenseResponse(created), nil
}

// Get implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Get(ctx context.Context, id string) (expense.ExpenseResponse, error) {
	e, err := s.workflow.Get(ctx, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return expense.NewExpenseResponse(*e), nil
}

// List implements expense.ExpenseService.
func (s *ExpenseServiceImpl) List(ctx context.Context, filter approval.Filter) (expense.ListExpenseResponse, error) {
	if err := workflow.Scope(ctx, &filter); err != nil {
		return expense.ListExpenseResponse{}, err
	}
	items, total, err := s.ExpenseReportRepository.List(ctx, filter)
	if err != nil {
		return expense.ListExpenseResponse{}, fmt.Errorf("failed to list expense reports: %w", err)
	}

	responses := make([]expense.ExpenseResponse, 0, len(items))
	for _, e := range items {
		responses = append(responses, expense.NewExpenseResponse(e))
	}
	return utils.NewPage(responses, total, filter.Pagination), nil
}

// Update implements expense.ExpenseService. A new receipt replaces the old
// file once the report is stored.
func (s *ExpenseServiceImpl) Update(ctx context.Context, req expense.UpdateExpenseRequest) (expense.ExpenseResponse, error) {
	today := s.clock.Now()
	var oldReceipt, newReceipt *string

	e, err := s.workflow.Edit(ctx, req.ID, func(e *expense.ExpenseReport) error {
		if err := req.Apply(e, today); err != nil {
			return err
		}
		e.Amount = utils.Round2(e.Amount)
		if req.Receipt != nil {
			url, err := s.uploadReceipt(ctx, e.UserID, req.Receipt)
			if err != nil {
				return err
			}
			oldReceipt, newReceipt = e.ReceiptURL, &url
			e.ReceiptURL = &url
		}
		return nil
	})
	if err != nil {
		if newReceipt != nil {
			s.discardReceipt(ctx, *newReceipt)
		}
		return expense.ExpenseResponse{}, err
	}
	if oldReceipt != nil {
		s.discardReceipt(ctx, *oldReceipt)
	}
	return expense.NewExpenseResponse(*e), nil
}

// Decide implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Decide(ctx context.Context, req approval.DecideRequest) (expense.ExpenseResponse, error) {
	e, err := s.workflow.Decide(ctx, req)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return expense.NewExpenseResponse(*e), nil
}

// Delete implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Delete(ctx context.Context, id string) error {
	e, err := s.workflow.Delete(ctx, id)
	if err != nil {
		return err
	}
	if e.ReceiptURL != nil {
		s.discardReceipt(ctx, *e.ReceiptURL)
	}
	return nil
}

// Types implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Types() []expense.TypeResponse {
	types := make([]expense.TypeResponse, 0, len(expense.TypeLabels))
	for _, t := range expense.TypeLabels {
		types = append(types, expense.TypeResponse{Value: string(t.Value), Label: t.Label})
	}
	return types
}

// Statistics implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Statistics(ctx context.Context, month string) (expense.StatisticsResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return expense.StatisticsResponse{}, err
	}
	year, mon, err := utils.ParseMonth(month, s.clock.Now())
	if err != nil {
		return expense.StatisticsResponse{}, err
	}

	from, to := utils.MonthRange(year, mon, s.clock.Location())
	totals, err := s.ExpenseReportRepository.Totals(ctx, p.OwnerScope(user.PermissionRequestViewAll), from, to)
	if err != nil {
		return expense.StatisticsResponse{}, fmt.Errorf("failed to aggregate expense reports: %w", err)
	}
	return expense.NewStatisticsResponse(utils.FormatMonth(year, mon), expense.Summarize(totals)), nil
}

func (s *ExpenseServiceImpl) uploadReceipt(ctx context.Context, userID string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open receipt: %w", err)
	}
	defer f.Close()

	url, err := s.fileService.UploadReceipt(ctx, userID, f, fh.Filename)
	if err != nil {
		return "", fmt.Errorf("failed to store receipt: %w", err)
	}
	return url, nil
}

func (s *ExpenseServiceImpl) discardReceipt(ctx context.Context, url string) {
	if err := s.fileService.DeleteByURL(ctx, url); err != nil {
		slog.Warn("failed to delete receipt", "url", url, "error", err)
	}
}
