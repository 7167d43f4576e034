package setting

import "github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"

var (
	ErrSettingNotFound = apperror.New(apperror.KindNotFound, "setting not found")
	ErrInvalidKey      = apperror.New(apperror.KindValidation, "setting key must not be empty")
)
