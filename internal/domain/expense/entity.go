package expense

import (
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
)

type Type string

const (
	TypeTravel         Type = "travel"
	TypeMeal           Type = "meal"
	TypeTransportation Type = "transportation"
	TypeAccommodation  Type = "accommodation"
	TypeOffice         Type = "office"
	TypeCommunication  Type = "communication"
	TypeTraining       Type = "training"
	TypeEntertainment  Type = "entertainment"
	TypeOther          Type = "other"
)

var TypeLabels = []struct {
	Value Type
	Label string
}{
	{TypeTravel, "Travel"},
	{TypeMeal, "Meals"},
	{TypeTransportation, "Transportation"},
	{TypeAccommodation, "Accommodation"},
	{TypeOffice, "Office supplies"},
	{TypeCommunication, "Communication"},
	{TypeTraining, "Training"},
	{TypeEntertainment, "Entertainment"},
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

type ExpenseReport struct {
	ID          string
	UserID      string
	ExpenseType Type
	Amount      float64
	Description string
	ExpenseDate time.Time
	ReceiptURL  *string
	approval.Record
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	Username *string
	RealName *string
}

func (e *ExpenseReport) Owner() string {
	return e.UserID
}

func (e *ExpenseReport) Approval() *approval.Record {
	return &e.Record
}

// Total is one (type, status) bucket of a month's reports.
type Total struct {
	ExpenseType Type
	Status      approval.Status
	Count       int
	Amount      float64
}

type TypeTotal struct {
	Count  int
	Amount float64
}

// Statistics summarises a month of expense reports.
type Statistics struct {
	TotalAmount    float64
	ApprovedAmount float64
	PendingAmount  float64
	RejectedAmount float64
	ByType         map[Type]TypeTotal
}

// Summarize folds per-bucket totals into Statistics, rounding amounts to
// two decimals.
func Summarize(totals []Total) Statistics {
	s := Statistics{ByType: make(map[Type]TypeTotal)}
	for _, t := range totals {
		s.TotalAmount += t.Amount
		switch t.Status {
		case approval.StatusApproved:
			s.ApprovedAmount += t.Amount
		case approval.StatusPending:
			s.PendingAmount += t.Amount
		case approval.StatusRejected:
			s.RejectedAmount += t.Amount
		}
		bt := s.ByType[t.ExpenseType]
		bt.Count += t.Count
		bt.Amount += t.Amount
		s.ByType[t.ExpenseType] = bt
	}
	s.TotalAmount = utils.Round2(s.TotalAmount)
	s.ApprovedAmount = utils.Round2(s.ApprovedAmount)
	s.PendingAmount = utils.Round2(s.PendingAmount)
	s.RejectedAmount = utils.Round2(s.RejectedAmount)
	for k, v := range s.ByType {
		v.Amount = utils.Round2(v.Amount)
		s.ByType[k] = v
	}
	return s
}
