package schedule

import (
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

type CreateScheduleRequest struct {
	UserID     string  `json:"user_id"`
	Date       string  `json:"date"`       // YYYY-MM-DD
	ShiftType  string  `json:"shift_type"` // morning, afternoon, evening, night
	StartTime  string  `json:"start_time"` // HH:MM:SS
	EndTime    string  `json:"end_time"`   // HH:MM:SS
	BreakStart *string `json:"break_start,omitempty"`
	BreakEnd   *string `json:"break_end,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// Validate checks field formats first; an unknown shift type is reported
// as ErrInvalidShiftType once every field is well formed.
func (r *CreateScheduleRequest) Validate() (time.Time, error) {
	var errs validator.ValidationErrors
	var date time.Time

	errs = validator.Required(errs, "user_id", r.UserID)
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	} else {
		date = d
	}
	errs = validator.Required(errs, "shift_type", r.ShiftType)
	errs = checkTime(errs, "start_time", &r.StartTime, true)
	errs = checkTime(errs, "end_time", &r.EndTime, true)
	errs = checkBreak(errs, r.BreakStart, r.BreakEnd)

	if len(errs) > 0 {
		return date, errs
	}
	if !ShiftType(r.ShiftType).Valid() {
		return date, ErrInvalidShiftType
	}
	return date, nil
}

type UpdateScheduleRequest struct {
	ID         string  `json:"-"`
	Date       *string `json:"date,omitempty"`
	ShiftType  *string `json:"shift_type,omitempty"`
	StartTime  *string `json:"start_time,omitempty"`
	EndTime    *string `json:"end_time,omitempty"`
	BreakStart *string `json:"break_start,omitempty"`
	BreakEnd   *string `json:"break_end,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *UpdateScheduleRequest) Apply(s *Schedule) error {
	var errs validator.ValidationErrors
	merged := *s

	if r.Date != nil {
		if d, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
		} else {
			merged.Date = d
		}
	}
	if r.StartTime != nil {
		errs = checkTime(errs, "start_time", r.StartTime, true)
		merged.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		errs = checkTime(errs, "end_time", r.EndTime, true)
		merged.EndTime = *r.EndTime
	}
	if r.BreakStart != nil {
		merged.BreakStart = r.BreakStart
	}
	if r.BreakEnd != nil {
		merged.BreakEnd = r.BreakEnd
	}
	if r.Notes != nil {
		merged.Notes = r.Notes
	}
	errs = checkBreak(errs, merged.BreakStart, merged.BreakEnd)

	if len(errs) > 0 {
		return errs
	}
	if r.ShiftType != nil {
		if !ShiftType(*r.ShiftType).Valid() {
			return ErrInvalidShiftType
		}
		merged.ShiftType = ShiftType(*r.ShiftType)
	}
	*s = merged
	return nil
}

func checkTime(errs validator.ValidationErrors, field string, value *string, required bool) validator.ValidationErrors {
	if value == nil || validator.IsEmpty(*value) {
		if required {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " is required"})
		}
		return errs
	}
	if _, ok := validator.IsValidTime(*value); !ok {
		errs = append(errs, validator.ValidationError{Field: field, Message: field + " must be in HH:MM:SS format"})
	}
	return errs
}

// checkBreak requires break_start <= break_end when both are given. The
// window is not compared with the shift bounds.
func checkBreak(errs validator.ValidationErrors, start, end *string) validator.ValidationErrors {
	before := len(errs)
	errs = checkTime(errs, "break_start", start, false)
	errs = checkTime(errs, "break_end", end, false)
	if len(errs) > before || start == nil || end == nil || *start == "" || *end == "" {
		return errs
	}
	from, _ := validator.IsValidTime(*start)
	to, _ := validator.IsValidTime(*end)
	if from.After(to) {
		errs = append(errs, validator.ValidationError{Field: "break_end", Message: "break_end must not be before break_start"})
	}
	return errs
}

type ScheduleFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	utils.Pagination
}

func (f *ScheduleFilter) Validate() error {
	errs := f.Pagination.Normalize()
	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PeriodRequest is an optional inclusive date range.
type PeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Resolve fills missing bounds with the first and last day of today's month.
func (r *PeriodRequest) Resolve(today time.Time) (time.Time, time.Time, error) {
	var errs validator.ValidationErrors
	first, last := utils.MonthRange(today.Year(), today.Month(), time.UTC)
	from, to := first, last
	if r.StartDate != "" {
		if d, ok := validator.IsValidDate(r.StartDate); ok {
			from = d
		} else {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
	}
	if r.EndDate != "" {
		if d, ok := validator.IsValidDate(r.EndDate); ok {
			to = d
		} else {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
	}
	if len(errs) > 0 {
		return from, to, errs
	}
	return from, to, nil
}

type ScheduleResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Username   *string `json:"username,omitempty"`
	RealName   *string `json:"real_name,omitempty"`
	Date       string  `json:"date"`
	ShiftType  string  `json:"shift_type"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	BreakStart *string `json:"break_start"`
	BreakEnd   *string `json:"break_end"`
	Notes      *string `json:"notes"`
	CreatedAt  string  `json:"created_at"`
}

func NewScheduleResponse(s Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		Username:   s.Username,
		RealName:   s.RealName,
		Date:       utils.FormatDate(s.Date),
		ShiftType:  string(s.ShiftType),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		BreakStart: s.BreakStart,
		BreakEnd:   s.BreakEnd,
		Notes:      s.Notes,
		CreatedAt:  utils.FormatDateTime(s.CreatedAt),
	}
}

type ListScheduleResponse = utils.Page[ScheduleResponse]

type MyScheduleResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
}

type ShiftTypeResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CalendarEntry is one shift in the calendar view. User fields are only
// filled for admins.
type CalendarEntry struct {
	ID        string  `json:"id"`
	ShiftType string  `json:"shift_type"`
	StartTime string  `json:"start_time"` // HH:MM
	EndTime   string  `json:"end_time"`   // HH:MM
	Notes     *string `json:"notes"`
	UserID    string  `json:"user_id,omitempty"`
	Username  *string `json:"username,omitempty"`
	RealName  *string `json:"real_name,omitempty"`
}

type CalendarResponse struct {
	Month    string                     `json:"month"`
	Calendar map[string][]CalendarEntry `json:"calendar"`
}

// BuildCalendar groups schedules by ISO date.
func BuildCalendar(month string, schedules []Schedule, withUsers bool) CalendarResponse {
	cal := make(map[string][]CalendarEntry)
	for _, s := range schedules {
		entry := CalendarEntry{
			ID:        s.ID,
			ShiftType: string(s.ShiftType),
			StartTime: utils.HourMinute(s.StartTime),
			EndTime:   utils.HourMinute(s.EndTime),
			Notes:     s.Notes,
		}
		if withUsers {
			entry.UserID = s.UserID
			entry.Username = s.Username
			entry.RealName = s.RealName
		}
		key := utils.FormatDate(s.Date)
		cal[key] = append(cal[key], entry)
	}
	return CalendarResponse{Month: month, Calendar: cal}
}
