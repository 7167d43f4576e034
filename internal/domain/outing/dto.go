package outing

import (
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

type CreateOutingRequest struct {
	Destination        string  `json:"destination"`
	Purpose            string  `json:"purpose"`
	StartTime          string  `json:"start_time"`           // YYYY-MM-DD HH:MM:SS
	ExpectedReturnTime string  `json:"expected_return_time"` // YYYY-MM-DD HH:MM:SS
	ContactInfo        *string `json:"contact_info,omitempty"`
}

// Validate parses the times in now's location and returns them.
func (r *CreateOutingRequest) Validate(now time.Time) (start, expected time.Time, err error) {
	var errs validator.ValidationErrors
	errs = validator.Required(errs, "destination", r.Destination)
	errs = validator.Required(errs, "purpose", r.Purpose)

	start, startOK := parseDateTime(&errs, "start_time", r.StartTime, now.Location())
	expected, expectedOK := parseDateTime(&errs, "expected_return_time", r.ExpectedReturnTime, now.Location())
	if startOK && expectedOK {
		errs = append(errs, checkWindow(start, expected, now, true)...)
	}

	if len(errs) > 0 {
		return start, expected, errs
	}
	return start, expected, nil
}

type UpdateOutingRequest struct {
	ID                 string  `json:"-"`
	Destination        *string `json:"destination,omitempty"`
	Purpose            *string `json:"purpose,omitempty"`
	StartTime          *string `json:"start_time,omitempty"`
	ExpectedReturnTime *string `json:"expected_return_time,omitempty"`
	ContactInfo        *string `json:"contact_info,omitempty"`
}

// Apply merges the update into o. start >= now is only enforced when the
// start time itself changes.
func (r *UpdateOutingRequest) Apply(o *OutingReport, now time.Time) error {
	var errs validator.ValidationErrors
	merged := *o

	if r.Destination != nil {
		errs = validator.Required(errs, "destination", *r.Destination)
		merged.Destination = *r.Destination
	}
	if r.Purpose != nil {
		errs = validator.Required(errs, "purpose", *r.Purpose)
		merged.Purpose = *r.Purpose
	}
	if r.StartTime != nil {
		if t, ok := parseDateTime(&errs, "start_time", *r.StartTime, now.Location()); ok {
			merged.StartTime = t
		}
	}
	if r.ExpectedReturnTime != nil {
		if t, ok := parseDateTime(&errs, "expected_return_time", *r.ExpectedReturnTime, now.Location()); ok {
			merged.ExpectedReturnTime = t
		}
	}
	if r.ContactInfo != nil {
		merged.ContactInfo = r.ContactInfo
	}
	if len(errs) == 0 {
		errs = checkWindow(merged.StartTime, merged.ExpectedReturnTime, now, r.StartTime != nil)
	}

	if len(errs) > 0 {
		return errs
	}
	*o = merged
	return nil
}

func parseDateTime(errs *validator.ValidationErrors, field, value string, loc *time.Location) (time.Time, bool) {
	if validator.IsEmpty(value) {
		*errs = append(*errs, validator.ValidationError{Field: field, Message: field + " is required"})
		return time.Time{}, false
	}
	t, ok := validator.IsValidDateTime(value, loc)
	if !ok {
		*errs = append(*errs, validator.ValidationError{Field: field, Message: field + " must be in YYYY-MM-DD HH:MM:SS format"})
	}
	return t, ok
}

func checkWindow(start, expected, now time.Time, checkPast bool) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !start.Before(expected) {
		errs = append(errs, validator.ValidationError{Field: "expected_return_time", Message: "expected_return_time must be after start_time"})
	}
	if checkPast && start.Before(now.Truncate(time.Second)) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must not be in the past"})
	}
	return errs
}

type OutingResponse struct {
	ID                 string  `json:"id"`
	UserID             string  `json:"user_id"`
	Username           *string `json:"username,omitempty"`
	RealName           *string `json:"real_name,omitempty"`
	Destination        string  `json:"destination"`
	Purpose            string  `json:"purpose"`
	StartTime          string  `json:"start_time"`
	ExpectedReturnTime string  `json:"expected_return_time"`
	ActualReturnTime   *string `json:"actual_return_time"`
	ContactInfo        *string `json:"contact_info"`
	approval.RecordResponse
	CreatedAt string `json:"created_at"`
}

func NewOutingResponse(o OutingReport) OutingResponse {
	return OutingResponse{
		ID:                 o.ID,
		UserID:             o.UserID,
		Username:           o.Username,
		RealName:           o.RealName,
		Destination:        o.Destination,
		Purpose:            o.Purpose,
		StartTime:          utils.FormatDateTime(o.StartTime),
		ExpectedReturnTime: utils.FormatDateTime(o.ExpectedReturnTime),
		ActualReturnTime:   utils.FormatDateTimePtr(o.ActualReturnTime),
		ContactInfo:        o.ContactInfo,
		RecordResponse:     approval.NewRecordResponse(o.Record),
		CreatedAt:          utils.FormatDateTime(o.CreatedAt),
	}
}

type ListOutingResponse = utils.Page[OutingResponse]
