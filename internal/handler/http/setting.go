package http

import (
	"net/http"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/setting"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
)

type SettingHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	BulkUpdate(w http.ResponseWriter, r *http.Request)
}

type settingHandlerImpl struct {
	settingService setting.SettingService
}

func NewSettingHandler(settingService setting.SettingService) SettingHandler {
	return &settingHandlerImpl{settingService: settingService}
}

// List implements SettingHandler.
func (h *settingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, settings)
}

// BulkUpdate implements SettingHandler.
func (h *settingHandlerImpl) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req setting.BulkUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.settingService.BulkUpdate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Settings updated successfully", result)
}
