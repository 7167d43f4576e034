package leave

import "github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"

var ErrLeaveRequestNotFound = apperror.New(apperror.KindNotFound, "leave request not found")
