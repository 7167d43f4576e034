package user

import "github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"

var (
	ErrUserNotFound            = apperror.New(apperror.KindNotFound, "user not found")
	ErrUsernameExists          = apperror.New(apperror.KindConflict, "username already exists")
	ErrEmailExists             = apperror.New(apperror.KindConflict, "email already registered")
	ErrEmployeeCodeExists      = apperror.New(apperror.KindConflict, "employee code already exists")
	ErrCannotDeleteAdmin       = apperror.New(apperror.KindState, "admin users cannot be deleted")
	ErrAdminPrivilegeRequired  = apperror.New(apperror.KindForbidden, "admin privilege required")
	ErrInsufficientPermissions = apperror.New(apperror.KindForbidden, "insufficient permissions")
	ErrUnauthenticated         = apperror.New(apperror.KindUnauthorized, "authentication required")
)
