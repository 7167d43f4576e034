package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

// ========================================
// CLOCK DTOs
// ========================================

type ClockInResponse struct {
	Date        string `json:"date"`
	ClockInTime string `json:"clock_in_time"`
	Status      string `json:"status"`
}

type ClockOutResponse struct {
	Date         string  `json:"date"`
	ClockOutTime string  `json:"clock_out_time"`
	WorkHours    float64 `json:"work_hours"`
	Status       string  `json:"status"`
}

type RecordResponse struct {
	ID           string  `json:"id,omitempty"`
	UserID       string  `json:"user_id,omitempty"`
	Username     *string `json:"username,omitempty"`
	RealName     *string `json:"real_name,omitempty"`
	Date         string  `json:"date"`
	ClockInTime  *string `json:"clock_in_time"`
	ClockOutTime *string `json:"clock_out_time"`
	ClockInIP    *string `json:"clock_in_ip,omitempty"`
	ClockOutIP   *string `json:"clock_out_ip,omitempty"`
	WorkHours    float64 `json:"work_hours"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		Username:     r.Username,
		RealName:     r.RealName,
		Date:         utils.FormatDate(r.Date),
		ClockInTime:  utils.FormatDateTimePtr(r.ClockIn),
		ClockOutTime: utils.FormatDateTimePtr(r.ClockOut),
		ClockInIP:    r.ClockInIP,
		ClockOutIP:   r.ClockOutIP,
		WorkHours:    r.WorkHours,
		Status:       string(r.Status),
		Notes:        r.Notes,
	}
}

// NotClockedIn is the placeholder for a date without a record.
func NotClockedIn(date time.Time) RecordResponse {
	return RecordResponse{
		Date:   utils.FormatDate(date),
		Status: string(StatusNotClockedIn),
	}
}

type ListRecordResponse = utils.Page[RecordResponse]

// ========================================
// FILTERS
// ========================================

type RecordFilter struct {
	// UserID is forced to the caller for personal history; admins may set it.
	UserID    *string `json:"user_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	utils.Pagination
}

func (f *RecordFilter) Validate() error {
	errs := f.Pagination.Normalize()

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

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

// ========================================
// STATISTICS
// ========================================

type StatisticsRequest struct {
	Month  string  `json:"month"` // YYYY-MM, defaults to the current month
	UserID *string `json:"user_id,omitempty"`
}

type StatisticsResponse struct {
	Month           string  `json:"month"`
	UserID          *string `json:"user_id,omitempty"`
	TotalDays       int     `json:"total_days"`
	TotalWorkHours  float64 `json:"total_work_hours"`
	NormalCount     int     `json:"normal_count"`
	LateCount       int     `json:"late_count"`
	EarlyLeaveCount int     `json:"early_leave_count"`
	AbsentCount     int     `json:"absent_count"`
}

func NewStatisticsResponse(month string, userID *string, s Statistics) StatisticsResponse {
	return StatisticsResponse{
		Month:           month,
		UserID:          userID,
		TotalDays:       s.TotalDays,
		TotalWorkHours:  utils.Round2(s.TotalWorkHours),
		NormalCount:     s.NormalCount,
		LateCount:       s.LateCount,
		EarlyLeaveCount: s.EarlyLeaveCount,
		AbsentCount:     s.AbsentCount,
	}
}

// ========================================
// ADMIN
// ========================================

type MarkAbsentRequest struct {
	UserID string  `json:"user_id"`
	Date   string  `json:"date"` // YYYY-MM-DD
	Notes  *string `json:"notes,omitempty"`
}

func (r *MarkAbsentRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = validator.Required(errs, "user_id", r.UserID)
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
