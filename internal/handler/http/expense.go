package http

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/expense"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type ExpenseHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Types(w http.ResponseWriter, r *http.Request)
	Statistics(w http.ResponseWriter, r *http.Request)
}

type expenseHandlerImpl struct {
	expenseService expense.ExpenseService
}

func NewExpenseHandler(expenseService expense.ExpenseService) ExpenseHandler {
	return &expenseHandlerImpl{expenseService: expenseService}
}

// multipart bodies carry the form fields plus a "receipt" file; the extra
// MiB leaves room for the fields next to a maximum-size receipt.
const maxExpenseForm = expense.MaxReceiptSize + 1<<20

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// formValue returns nil for fields not present in the form.
func formValue(r *http.Request, key string) *string {
	if _, ok := r.MultipartForm.Value[key]; !ok {
		return nil
	}
	v := r.FormValue(key)
	return &v
}

func receiptFile(r *http.Request) *multipart.FileHeader {
	if files := r.MultipartForm.File["receipt"]; len(files) > 0 {
		return files[0]
	}
	return nil
}

func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, validator.ValidationErrors{{Field: "amount", Message: "amount must be a number"}}
	}
	return amount, nil
}

func parseExpenseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxExpenseForm)
	if err := r.ParseMultipartForm(maxExpenseForm); err != nil {
		response.BadRequest(w, "Invalid multipart form or receipt larger than 5MB", nil)
		return false
	}
	return true
}

// Submit implements ExpenseHandler.
func (h *expenseHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req expense.CreateExpenseRequest
	if isMultipart(r) {
		if !parseExpenseForm(w, r) {
			return
		}
		req.ExpenseType = r.FormValue("expense_type")
		req.Description = r.FormValue("description")
		req.ExpenseDate = r.FormValue("expense_date")
		if raw := r.FormValue("amount"); raw != "" {
			amount, err := parseAmount(raw)
			if err != nil {
				response.HandleError(w, err)
				return
			}
			req.Amount = amount
		}
		req.Receipt = receiptFile(r)
	} else if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.expenseService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Expense report submitted", created)
}

// Get implements ExpenseHandler.
func (h *expenseHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.expenseService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// List implements ExpenseHandler.
func (h *expenseHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := approvalFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.expenseService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Update implements ExpenseHandler.
func (h *expenseHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req expense.UpdateExpenseRequest
	if isMultipart(r) {
		if !parseExpenseForm(w, r) {
			return
		}
		req.ExpenseType = formValue(r, "expense_type")
		req.Description = formValue(r, "description")
		req.ExpenseDate = formValue(r, "expense_date")
		if raw := formValue(r, "amount"); raw != nil {
			amount, err := parseAmount(*raw)
			if err != nil {
				response.HandleError(w, err)
				return
			}
			req.Amount = &amount
		}
		req.Receipt = receiptFile(r)
	} else if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.expenseService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense report updated", result)
}

// Decide implements ExpenseHandler.
func (h *expenseHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	req, ok := decideRequest(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	result, err := h.expenseService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense report "+result.Status, result)
}

// Delete implements ExpenseHandler.
func (h *expenseHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.expenseService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense report deleted", nil)
}

// Types implements ExpenseHandler.
func (h *expenseHandlerImpl) Types(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.expenseService.Types())
}

// Statistics implements ExpenseHandler.
func (h *expenseHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.expenseService.Statistics(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
