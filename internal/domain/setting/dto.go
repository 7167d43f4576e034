package setting

import "github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"

type SettingResponse struct {
	Key         string  `json:"key"`
	Value       string  `json:"value"`
	Description *string `json:"description"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewSettingResponse(s Setting) SettingResponse {
	return SettingResponse{
		Key:         s.Key,
		Value:       s.Value,
		Description: s.Description,
		UpdatedAt:   utils.FormatDateTime(s.UpdatedAt),
	}
}

// BulkUpdateRequest maps setting keys to new values.
type BulkUpdateRequest map[string]string

type BulkUpdateResponse struct {
	Updated []string `json:"updated"`
}
