package leave

import (
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
)

type Type string

const (
	TypeSick      Type = "sick"
	TypePersonal  Type = "personal"
	TypeAnnual    Type = "annual"
	TypeMaternity Type = "maternity"
	TypePaternity Type = "paternity"
	TypeMarriage  Type = "marriage"
	TypeFuneral   Type = "funeral"
	TypeOther     Type = "other"
)

// TypeLabels lists the leave types in display order.
var TypeLabels = []struct {
	Value Type
	Label string
}{
	{TypeSick, "Sick leave"},
	{TypePersonal, "Personal leave"},
	{TypeAnnual, "Annual leave"},
	{TypeMaternity, "Maternity leave"},
	{TypePaternity, "Paternity leave"},
	{TypeMarriage, "Marriage leave"},
	{TypeFuneral, "Bereavement leave"},
	{TypeOther, "Other"},
}

func (t Type) Valid() bool {
	for _, l := range TypeLabels {
		if l.Value == t {
			return true
		}
	}
	return false
}

type LeaveRequest struct {
	ID        string
	UserID    string
	LeaveType Type
	StartDate time.Time
	EndDate   time.Time
	Days      int
	Reason    string
	approval.Record
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	Username *string
	RealName *string
}

func (l *LeaveRequest) Owner() string {
	return l.UserID
}

func (l *LeaveRequest) Approval() *approval.Record {
	return &l.Record
}

// CountDays is the inclusive number of calendar days from start to end.
func CountDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
