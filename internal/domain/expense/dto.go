package expense

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

const MaxReceiptSize = 5 << 20

var receiptExts = []string{".jpg", ".jpeg", ".png", ".pdf"}

type CreateExpenseRequest struct {
	ExpenseType string                `json:"expense_type"`
	Amount      float64               `json:"amount"`
	Description string                `json:"description"`
	ExpenseDate string                `json:"expense_date"` // YYYY-MM-DD
	Receipt     *multipart.FileHeader `json:"-"`
}

func (r *CreateExpenseRequest) Validate(today time.Time) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ExpenseType) {
		errs = append(errs, validator.ValidationError{Field: "expense_type", Message: "expense_type is required"})
	} else if !Type(r.ExpenseType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "expense_type", Message: "invalid expense_type"})
	}

	if r.Amount <= 0 {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be greater than 0"})
	}

	errs = validator.Required(errs, "description", r.Description)

	if validator.IsEmpty(r.ExpenseDate) {
		errs = append(errs, validator.ValidationError{Field: "expense_date", Message: "expense_date is required"})
	} else if d, ok := validator.IsValidDate(r.ExpenseDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "expense_date", Message: "expense_date must be in YYYY-MM-DD format"})
	} else if utils.FormatDate(d) > utils.FormatDate(today) {
		errs = append(errs, validator.ValidationError{Field: "expense_date", Message: "expense_date must not be in the future"})
	}

	errs = append(errs, validateReceipt(r.Receipt)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateExpenseRequest struct {
	ID          string                `json:"-"`
	ExpenseType *string               `json:"expense_type,omitempty"`
	Amount      *float64              `json:"amount,omitempty"`
	Description *string               `json:"description,omitempty"`
	ExpenseDate *string               `json:"expense_date,omitempty"`
	Receipt     *multipart.FileHeader `json:"-"`
}

// Apply merges the update into e after validating every supplied field.
func (r *UpdateExpenseRequest) Apply(e *ExpenseReport, today time.Time) error {
	var errs validator.ValidationErrors
	merged := *e

	if r.ExpenseType != nil {
		if !Type(*r.ExpenseType).Valid() {
			errs = append(errs, validator.ValidationError{Field: "expense_type", Message: "invalid expense_type"})
		}
		merged.ExpenseType = Type(*r.ExpenseType)
	}
	if r.Amount != nil {
		if *r.Amount <= 0 {
			errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be greater than 0"})
		}
		merged.Amount = *r.Amount
	}
	if r.Description != nil {
		errs = validator.Required(errs, "description", *r.Description)
		merged.Description = *r.Description
	}
	if r.ExpenseDate != nil {
		if d, ok := validator.IsValidDate(*r.ExpenseDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "expense_date", Message: "expense_date must be in YYYY-MM-DD format"})
		} else if utils.FormatDate(d) > utils.FormatDate(today) {
			errs = append(errs, validator.ValidationError{Field: "expense_date", Message: "expense_date must not be in the future"})
		} else {
			merged.ExpenseDate = d
		}
	}
	errs = append(errs, validateReceipt(r.Receipt)...)

	if len(errs) > 0 {
		return errs
	}
	*e = merged
	return nil
}

func validateReceipt(fh *multipart.FileHeader) validator.ValidationErrors {
	if fh == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !validator.IsInSlice(strings.ToLower(filepath.Ext(fh.Filename)), receiptExts) {
		errs = append(errs, validator.ValidationError{Field: "receipt", Message: ErrInvalidReceiptType.Error()})
	}
	if fh.Size > MaxReceiptSize {
		errs = append(errs, validator.ValidationError{Field: "receipt", Message: ErrReceiptTooLarge.Error()})
	}
	return errs
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Username    *string `json:"username,omitempty"`
	RealName    *string `json:"real_name,omitempty"`
	ExpenseType string  `json:"expense_type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	ExpenseDate string  `json:"expense_date"`
	ReceiptURL  *string `json:"receipt_url"`
	approval.RecordResponse
	CreatedAt string `json:"created_at"`
}

func NewExpenseResponse(e ExpenseReport) ExpenseResponse {
	return ExpenseResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		Username:       e.Username,
		RealName:       e.RealName,
		ExpenseType:    string(e.ExpenseType),
		Amount:         utils.Round2(e.Amount),
		Description:    e.Description,
		ExpenseDate:    utils.FormatDate(e.ExpenseDate),
		ReceiptURL:     e.ReceiptURL,
		RecordResponse: approval.NewRecordResponse(e.Record),
		CreatedAt:      utils.FormatDateTime(e.CreatedAt),
	}
}

type ListExpenseResponse = utils.Page[ExpenseResponse]

type TypeResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type TypeTotalResponse struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type StatisticsResponse struct {
	Month          string                       `json:"month"`
	TotalAmount    float64                      `json:"total_amount"`
	ApprovedAmount float64                      `json:"approved_amount"`
	PendingAmount  float64                      `json:"pending_amount"`
	RejectedAmount float64                      `json:"rejected_amount"`
	ByType         map[string]TypeTotalResponse `json:"by_type"`
}

func NewStatisticsResponse(month string, s Statistics) StatisticsResponse {
	byType := make(map[string]TypeTotalResponse, len(s.ByType))
	for t, v := range s.ByType {
		byType[string(t)] = TypeTotalResponse{Count: v.Count, Amount: v.Amount}
	}
	return StatisticsResponse{
		Month:          month,
		TotalAmount:    s.TotalAmount,
		ApprovedAmount: s.ApprovedAmount,
		PendingAmount:  s.PendingAmount,
		RejectedAmount: s.RejectedAmount,
		ByType:         byType,
	}
}
