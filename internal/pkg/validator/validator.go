package validator

import (
	"regexp"
	"strings"
	"time"
)

// Wire formats for dates and times.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Username validation: 3-50 chars, letters, digits and underscore
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)

func IsValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// IsValidTime checks an "HH:MM:SS" time of day.
func IsValidTime(timeStr string) (time.Time, bool) {
	t, err := time.Parse(TimeLayout, timeStr)
	return t, err == nil
}

// IsValidDateTime checks a "YYYY-MM-DD HH:MM:SS" timestamp and interprets it in loc.
func IsValidDateTime(dateTimeStr string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(DateTimeLayout, dateTimeStr, loc)
	return t, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// Required appends a "<field> is required" error when value is blank.
func Required(errs ValidationErrors, field, value string) ValidationErrors {
	if IsEmpty(value) {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: field + " is required",
		})
	}
	return errs
}
