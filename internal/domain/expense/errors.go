package expense

import "github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"

var (
	ErrExpenseReportNotFound = apperror.New(apperror.KindNotFound, "expense report not found")
	ErrInvalidReceiptType    = apperror.New(apperror.KindValidation, "receipt must be a jpg, jpeg, png or pdf file")
	ErrReceiptTooLarge       = apperror.New(apperror.KindValidation, "receipt must not exceed 5MB")
)
