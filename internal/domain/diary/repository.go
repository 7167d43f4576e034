package diary

import (
	"context"
	"time"
)

// DiaryRepository keeps one diary per user and date; Create returns
// ErrDiaryExists when that key is taken.
type DiaryRepository interface {
	Create(ctx context.Context, d Diary) (Diary, error)
	GetByID(ctx context.Context, id string) (Diary, error)
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (Diary, error)
	Update(ctx context.Context, d Diary) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter DiaryFilter) ([]Diary, int64, error)

	// CountByUser counts diaries dated from..to per user; a nil userID
	// covers every user.
	CountByUser(ctx context.Context, userID *string, from, to time.Time) ([]UserCount, error)
}
