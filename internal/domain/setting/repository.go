package setting

import "context"

type SettingRepository interface {
	List(ctx context.Context) ([]Setting, error)
	Get(ctx context.Context, key string) (Setting, error)
	// Upsert inserts the key or replaces its value.
	Upsert(ctx context.Context, s Setting) error
}
