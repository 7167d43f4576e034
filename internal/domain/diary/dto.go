package diary

import (
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

type CreateDiaryRequest struct {
	Date         string  `json:"date"` // YYYY-MM-DD, defaults to today
	Content      string  `json:"content"`
	Achievements *string `json:"achievements,omitempty"`
	Issues       *string `json:"issues,omitempty"`
	NextPlan     *string `json:"next_plan,omitempty"`
}

// Validate fills a missing date with today and returns the parsed date.
func (r *CreateDiaryRequest) Validate(today time.Time) (time.Time, error) {
	var errs validator.ValidationErrors
	var date time.Time

	if validator.IsEmpty(r.Date) {
		r.Date = utils.FormatDate(today)
	}
	if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	} else if r.Date > utils.FormatDate(today) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must not be in the future"})
	} else {
		date = d
	}
	errs = validator.Required(errs, "content", r.Content)

	if len(errs) > 0 {
		return date, errs
	}
	return date, nil
}

type UpdateDiaryRequest struct {
	ID           string  `json:"-"`
	Content      *string `json:"content,omitempty"`
	Achievements *string `json:"achievements,omitempty"`
	Issues       *string `json:"issues,omitempty"`
	NextPlan     *string `json:"next_plan,omitempty"`
}

func (r *UpdateDiaryRequest) Apply(d *Diary) error {
	var errs validator.ValidationErrors
	if r.Content != nil {
		errs = validator.Required(errs, "content", *r.Content)
	}
	if len(errs) > 0 {
		return errs
	}
	if r.Content != nil {
		d.Content = *r.Content
	}
	if r.Achievements != nil {
		d.Achievements = r.Achievements
	}
	if r.Issues != nil {
		d.Issues = r.Issues
	}
	if r.NextPlan != nil {
		d.NextPlan = r.NextPlan
	}
	return nil
}

type DiaryFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	utils.Pagination
}

func (f *DiaryFilter) Validate() error {
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

type DiaryResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Username     *string `json:"username,omitempty"`
	RealName     *string `json:"real_name,omitempty"`
	Date         string  `json:"date"`
	Content      string  `json:"content"`
	Achievements *string `json:"achievements"`
	Issues       *string `json:"issues"`
	NextPlan     *string `json:"next_plan"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewDiaryResponse(d Diary) DiaryResponse {
	return DiaryResponse{
		ID:           d.ID,
		UserID:       d.UserID,
		Username:     d.Username,
		RealName:     d.RealName,
		Date:         utils.FormatDate(d.Date),
		Content:      d.Content,
		Achievements: d.Achievements,
		Issues:       d.Issues,
		NextPlan:     d.NextPlan,
		CreatedAt:    utils.FormatDateTime(d.CreatedAt),
		UpdatedAt:    utils.FormatDateTime(d.UpdatedAt),
	}
}

type ListDiaryResponse = utils.Page[DiaryResponse]

type UserCountResponse struct {
	UserID   string  `json:"user_id"`
	Username string  `json:"username"`
	RealName *string `json:"real_name"`
	Count    int     `json:"count"`
}

type StatisticsResponse struct {
	Month      string              `json:"month"`
	TotalCount int                 `json:"total_count"`
	ByUser     []UserCountResponse `json:"by_user,omitempty"`
}

// NewStatisticsResponse sums the counts; the per-user breakdown is only
// included when withUsers is set.
func NewStatisticsResponse(month string, counts []UserCount, withUsers bool) StatisticsResponse {
	resp := StatisticsResponse{Month: month}
	for _, c := range counts {
		resp.TotalCount += c.Count
		if withUsers {
			resp.ByUser = append(resp.ByUser, UserCountResponse{
				UserID:   c.UserID,
				Username: c.Username,
				RealName: c.RealName,
				Count:    c.Count,
			})
		}
	}
	return resp
}
