package auth

import "github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"

var (
	ErrInvalidCredentials     = apperror.New(apperror.KindUnauthorized, "invalid username or password")
	ErrAccountDisabled        = apperror.New(apperror.KindUnauthorized, "account is disabled")
	ErrInvalidToken           = apperror.New(apperror.KindUnauthorized, "invalid or expired token")
	ErrTokenRevoked           = apperror.New(apperror.KindUnauthorized, "token has been revoked")
	ErrCurrentPasswordInvalid = apperror.New(apperror.KindUnauthorized, "current password is incorrect")
)
