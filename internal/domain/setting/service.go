package setting

import "context"

type SettingService interface {
	// Policy returns the current attendance policy snapshot.
	Policy(ctx context.Context) (Policy, error)

	List(ctx context.Context) ([]SettingResponse, error)

	// BulkUpdate applies entries one by one in key order. It is not atomic:
	// when a key fails, the keys before it stay applied and are reported.
	BulkUpdate(ctx context.Context, req BulkUpdateRequest) (BulkUpdateResponse, error)
}
