// Package approval holds the pending -> approved/rejected lifecycle shared by
// leave requests, expense reports and outing reports.
package approval

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed" // outing reports only, reached from approved
)

// Statuses are the values accepted by list filters.
var Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected), string(StatusCompleted)}

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

var (
	ErrNotPending           = apperror.New(apperror.KindState, "only pending requests can be changed")
	ErrApproverRoleRequired = apperror.New(apperror.KindForbidden, "only admins and managers can approve or reject requests")
	ErrNotOwner             = apperror.New(apperror.KindForbidden, "you can only modify your own requests")
	ErrNotVisible           = apperror.New(apperror.KindForbidden, "you are not allowed to view this request")
	ErrInvalidAction        = apperror.New(apperror.KindValidation, "action must be approve or reject")
)

// Record is the approval state embedded in every approvable entity.
type Record struct {
	Status        Status
	ApproverID    *string
	ApprovedAt    *time.Time
	ApprovalNotes *string
}

// CanDecide reports whether a role may approve or reject requests.
func CanDecide(role user.Role) bool {
	return user.HasPermission(role, user.PermissionRequestApprove)
}

// Decide moves a pending record to approved or rejected.
func (r *Record) Decide(approverID string, action Action, notes *string, at time.Time) error {
	if r.Status != StatusPending {
		return ErrNotPending
	}
	switch action {
	case ActionApprove:
		r.Status = StatusApproved
	case ActionReject:
		r.Status = StatusRejected
	default:
		return ErrInvalidAction
	}
	r.ApproverID = &approverID
	r.ApprovedAt = &at
	r.ApprovalNotes = notes
	return nil
}

// DecideRequest is the body of an approve/reject call.
type DecideRequest struct {
	ID     string  `json:"-"`
	Action string  `json:"action"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	r.Action = strings.ToLower(strings.TrimSpace(r.Action))
	if !validator.IsInSlice(r.Action, []string{string(ActionApprove), string(ActionReject)}) {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "action must be one of: approve, reject"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordResponse is the approval part of every request response.
type RecordResponse struct {
	Status        string  `json:"status"`
	ApproverID    *string `json:"approver_id"`
	ApprovedAt    *string `json:"approved_at"`
	ApprovalNotes *string `json:"approval_notes"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		Status:        string(r.Status),
		ApproverID:    r.ApproverID,
		ApprovedAt:    utils.FormatDateTimePtr(r.ApprovedAt),
		ApprovalNotes: r.ApprovalNotes,
	}
}

// Filter narrows request listings; OwnerID is set by the service for
// callers who may only see their own requests.
type Filter struct {
	OwnerID *string `json:"-"`
	Status  *string `json:"status,omitempty"`
	utils.Pagination
}

func (f *Filter) Validate() error {
	errs := f.Pagination.Normalize()
	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
