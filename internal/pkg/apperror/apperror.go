// Package apperror carries the failure kind of a domain error so the HTTP
// boundary can map it to a status code without knowing every sentinel.
package apperror

import "errors"

// Kind classifies a domain failure.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindConflict     Kind = "conflict"
	KindState        Kind = "state"
	KindUnauthorized Kind = "unauthorized"
)

// Error is a domain error with a kind. Sentinels are compared by identity,
// so declare them once with New and wrap them with fmt.Errorf("...: %w").
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
