package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses by their kind.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	switch appErr.Kind {
	case apperror.KindValidation:
		BadRequest(w, appErr.Message, nil)
	case apperror.KindNotFound:
		NotFound(w, appErr.Message)
	case apperror.KindForbidden:
		if errors.Is(err, attendance.ErrIPNotAllowed) {
			writeError(w, http.StatusForbidden, "IP_NOT_ALLOWED", appErr.Message, nil)
			return
		}
		Forbidden(w, appErr.Message)
	case apperror.KindConflict:
		Conflict(w, appErr.Message)
	case apperror.KindState:
		InvalidState(w, appErr.Message)
	case apperror.KindUnauthorized:
		Unauthorized(w, appErr.Message)
	default:
		slog.Error("unknown error kind", "kind", appErr.Kind, "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
