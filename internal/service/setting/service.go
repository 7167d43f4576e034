package setting

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/setting"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

type SettingServiceImpl struct {
	setting.SettingRepository
}

func NewSettingService(settingRepository setting.SettingRepository) setting.SettingService {
	return &SettingServiceImpl{SettingRepository: settingRepository}
}

// Policy implements setting.SettingService.
func (s *SettingServiceImpl) Policy(ctx context.Context) (setting.Policy, error) {
	settings, err := s.SettingRepository.List(ctx)
	if err != nil {
		return setting.Policy{}, fmt.Errorf("failed to load settings: %w", err)
	}
	p, invalid := setting.NewPolicy(settings)
	for key, err := range invalid {
		slog.Warn("ignoring invalid setting, using default", "key", key, "error", err)
	}
	return p, nil
}

// List implements setting.SettingService.
func (s *SettingServiceImpl) List(ctx context.Context) ([]setting.SettingResponse, error) {
	if err := requireSettingsManager(ctx); err != nil {
		return nil, err
	}
	settings, err := s.SettingRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	responses := make([]setting.SettingResponse, 0, len(settings))
	for _, st := range settings {
		responses = append(responses, setting.NewSettingResponse(st))
	}
	return responses, nil
}

// BulkUpdate implements setting.SettingService.
func (s *SettingServiceImpl) BulkUpdate(ctx context.Context, req setting.BulkUpdateRequest) (setting.BulkUpdateResponse, error) {
	resp := setting.BulkUpdateResponse{Updated: []string{}}
	if err := requireSettingsManager(ctx); err != nil {
		return resp, err
	}

	keys := make([]string, 0, len(req))
	for key := range req {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.TrimSpace(key) == "" {
			return resp, setting.ErrInvalidKey
		}
		value := req[key]
		if err := setting.ValidateValue(key, value); err != nil {
			return resp, validator.ValidationErrors{{Field: key, Message: err.Error()}}
		}
		if err := s.SettingRepository.Upsert(ctx, setting.Setting{Key: key, Value: value}); err != nil {
			return resp, fmt.Errorf("failed to update setting %q: %w", key, err)
		}
		resp.Updated = append(resp.Updated, key)
	}

	slog.Info("settings updated", "keys", resp.Updated)
	return resp, nil
}

func requireSettingsManager(ctx context.Context) error {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	if !p.Can(user.PermissionSettingsManage) {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}
