package leave

import (
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Reason    string `json:"reason"`
}

// Validate checks the payload against today, the caller's current date.
func (r *CreateLeaveRequest) Validate(today time.Time) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type is required"})
	} else if !Type(r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "invalid leave_type"})
	}

	start, startOK := parseDate(&errs, "start_date", r.StartDate)
	end, endOK := parseDate(&errs, "end_date", r.EndDate)
	if startOK && endOK {
		errs = append(errs, checkRange(start, end, today, true)...)
	}

	errs = validator.Required(errs, "reason", r.Reason)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateLeaveRequest carries only the fields being changed.
type UpdateLeaveRequest struct {
	ID        string  `json:"-"`
	LeaveType *string `json:"leave_type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// Apply merges the update into l, re-derives the day count and validates
// the result. l is only modified when the result is valid.
func (r *UpdateLeaveRequest) Apply(l *LeaveRequest, today time.Time) error {
	var errs validator.ValidationErrors
	merged := *l

	if r.LeaveType != nil {
		if !Type(*r.LeaveType).Valid() {
			errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "invalid leave_type"})
		}
		merged.LeaveType = Type(*r.LeaveType)
	}
	if r.StartDate != nil {
		if d, ok := parseDate(&errs, "start_date", *r.StartDate); ok {
			merged.StartDate = d
		}
	}
	if r.EndDate != nil {
		if d, ok := parseDate(&errs, "end_date", *r.EndDate); ok {
			merged.EndDate = d
		}
	}
	if r.Reason != nil {
		errs = validator.Required(errs, "reason", *r.Reason)
		merged.Reason = *r.Reason
	}
	if len(errs) == 0 {
		errs = checkRange(merged.StartDate, merged.EndDate, today, r.StartDate != nil)
	}

	if len(errs) > 0 {
		return errs
	}
	merged.Days = CountDays(merged.StartDate, merged.EndDate)
	*l = merged
	return nil
}

func parseDate(errs *validator.ValidationErrors, field, value string) (time.Time, bool) {
	if validator.IsEmpty(value) {
		*errs = append(*errs, validator.ValidationError{Field: field, Message: field + " is required"})
		return time.Time{}, false
	}
	d, ok := validator.IsValidDate(value)
	if !ok {
		*errs = append(*errs, validator.ValidationError{Field: field, Message: field + " must be in YYYY-MM-DD format"})
	}
	return d, ok
}

func checkRange(start, end, today time.Time, checkPast bool) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	if checkPast && utils.FormatDate(start) < utils.FormatDate(today) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must not be in the past"})
	}
	return errs
}

type LeaveResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Username  *string `json:"username,omitempty"`
	RealName  *string `json:"real_name,omitempty"`
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Days      int     `json:"days"`
	Reason    string  `json:"reason"`
	approval.RecordResponse
	CreatedAt string `json:"created_at"`
}

func NewLeaveResponse(l LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:             l.ID,
		UserID:         l.UserID,
		Username:       l.Username,
		RealName:       l.RealName,
		LeaveType:      string(l.LeaveType),
		StartDate:      utils.FormatDate(l.StartDate),
		EndDate:        utils.FormatDate(l.EndDate),
		Days:           l.Days,
		Reason:         l.Reason,
		RecordResponse: approval.NewRecordResponse(l.Record),
		CreatedAt:      utils.FormatDateTime(l.CreatedAt),
	}
}

type ListLeaveResponse = utils.Page[LeaveResponse]

type TypeResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
