package diary

import "context"

type DiaryService interface {
	Create(ctx context.Context, req CreateDiaryRequest) (DiaryResponse, error)
	Get(ctx context.Context, id string) (DiaryResponse, error)
	List(ctx context.Context, filter DiaryFilter) (ListDiaryResponse, error)
	Update(ctx context.Context, req UpdateDiaryRequest) (DiaryResponse, error)
	Delete(ctx context.Context, id string) error

	// Today returns the caller's diary for the current date, or nil.
	Today(ctx context.Context) (*DiaryResponse, error)

	Statistics(ctx context.Context, month string) (StatisticsResponse, error)
}
