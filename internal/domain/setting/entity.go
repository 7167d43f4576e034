package setting

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/ipgate"
)

const (
	KeyWorkStartTime = "work_start_time"
	KeyWorkEndTime   = "work_end_time"
	KeyBreakDuration = "break_duration"
	KeyAllowedIPs    = "allowed_ips"
)

const (
	DefaultWorkStartTime = "09:00"
	DefaultWorkEndTime   = "18:00"
	DefaultBreakDuration = "1.0"
)

type Setting struct {
	Key         string
	Value       string
	Description *string
	UpdatedAt   time.Time
}

// Policy is the attendance configuration read once per request. It is a
// value; changing settings mid-request does not affect a snapshot in use.
type Policy struct {
	WorkStart  time.Duration // offset from midnight
	WorkEnd    time.Duration // offset from midnight
	BreakHours float64
	AllowedIPs *string // nil when the setting is absent
}

// DefaultPolicy is what an empty settings table means.
func DefaultPolicy() Policy {
	start, _ := ParseTimeOfDay(DefaultWorkStartTime)
	end, _ := ParseTimeOfDay(DefaultWorkEndTime)
	brk, _ := strconv.ParseFloat(DefaultBreakDuration, 64)
	return Policy{WorkStart: start, WorkEnd: end, BreakHours: brk}
}

// Gate builds the clock-in/out IP allow-list of this policy.
func (p Policy) Gate() ipgate.Gate {
	return ipgate.New(p.AllowedIPs)
}

// NewPolicy overlays stored settings on the defaults. Stored values that do
// not parse keep the default and are reported in invalid.
func NewPolicy(settings []Setting) (p Policy, invalid map[string]error) {
	p = DefaultPolicy()
	for _, s := range settings {
		var err error
		switch s.Key {
		case KeyWorkStartTime:
			var d time.Duration
			if d, err = ParseTimeOfDay(s.Value); err == nil {
				p.WorkStart = d
			}
		case KeyWorkEndTime:
			var d time.Duration
			if d, err = ParseTimeOfDay(s.Value); err == nil {
				p.WorkEnd = d
			}
		case KeyBreakDuration:
			var h float64
			if h, err = parseBreakHours(s.Value); err == nil {
				p.BreakHours = h
			}
		case KeyAllowedIPs:
			v := s.Value
			p.AllowedIPs = &v
		}
		if err != nil {
			if invalid == nil {
				invalid = make(map[string]error)
			}
			invalid[s.Key] = err
		}
	}
	return p, invalid
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("time must be HH:MM or HH:MM:SS: %w", err)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

func parseBreakHours(s string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("break duration must be a number of hours: %w", err)
	}
	if h < 0 || h > 24 {
		return 0, fmt.Errorf("break duration must be between 0 and 24 hours")
	}
	return h, nil
}

// ValidateValue checks a value for a known key. Unknown keys are free-form.
func ValidateValue(key, value string) error {
	switch key {
	case KeyWorkStartTime, KeyWorkEndTime:
		_, err := ParseTimeOfDay(value)
		return err
	case KeyBreakDuration:
		_, err := parseBreakHours(value)
		return err
	}
	return nil
}
