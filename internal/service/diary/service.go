package diary

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/diary"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
)

type DiaryServiceImpl struct {
	diary.DiaryRepository
	clock clock.Clock
}

func NewDiaryService(diaryRepository diary.DiaryRepository, clk clock.Clock) diary.DiaryService {
	return &DiaryServiceImpl{DiaryRepository: diaryRepository, clock: clk}
}

// Create implements diary.DiaryService.
func (s *DiaryServiceImpl) Create(ctx context.Context, req diary.CreateDiaryRequest) (diary.DiaryResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return diary.DiaryResponse{}, err
	}
	date, err := req.Validate(s.clock.Now())
	if err != nil {
		return diary.DiaryResponse{}, err
	}

	created, err := s.DiaryRepository.Create(ctx, diary.Diary{
		UserID:       p.UserID,
		Date:         date,
		Content:      req.Content,
		Achievements: req.Achievements,
		Issues:       req.Issues,
		NextPlan:     req.NextPlan,
	})
	if err != nil {
		return diary.DiaryResponse{}, fmt.Errorf("failed to create diary: %w", err)
	}
	return diary.NewDiaryResponse(created), nil
}

// Get implements diary.DiaryService.
func (s *DiaryServiceImpl) Get(ctx context.Context, id string) (diary.DiaryResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return diary.DiaryResponse{}, err
	}
	d, err := s.DiaryRepository.GetByID(ctx, id)
	if err != nil {
		return diary.DiaryResponse{}, fmt.Errorf("get diary: %w", err)
	}
	if d.UserID != p.UserID && !p.Can(user.PermissionDiaryViewAll) {
		return diary.DiaryResponse{}, diary.ErrNotVisible
	}
	return diary.NewDiaryResponse(d), nil
}

// List implements diary.DiaryService. Callers without diary.view_all only
// see their own diaries whatever user_id they pass.
func (s *DiaryServiceImpl) List(ctx context.Context, filter diary.DiaryFilter) (diary.ListDiaryResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return diary.ListDiaryResponse{}, err
	}
	if scope := p.OwnerScope(user.PermissionDiaryViewAll); scope != nil {
		filter.UserID = scope
	}

	items, total, err := s.DiaryRepository.List(ctx, filter)
	if err != nil {
		return diary.ListDiaryResponse{}, fmt.Errorf("failed to list diaries: %w", err)
	}
	responses := make([]diary.DiaryResponse, 0, len(items))
	for _, d := range items {
		responses = append(responses, diary.NewDiaryResponse(d))
	}
	return utils.NewPage(responses, total, filter.Pagination), nil
}

// Update implements diary.DiaryService.
func (s *DiaryServiceImpl) Update(ctx context.Context, req diary.UpdateDiaryRequest) (diary.DiaryResponse, error) {
	d, err := s.editable(ctx, req.ID)
	if err != nil {
		return diary.DiaryResponse{}, err
	}
	if err := req.Apply(&d); err != nil {
		return diary.DiaryResponse{}, err
	}
	if err := s.DiaryRepository.Update(ctx, d); err != nil {
		return diary.DiaryResponse{}, fmt.Errorf("failed to update diary: %w", err)
	}
	return diary.NewDiaryResponse(d), nil
}

// Delete implements diary.DiaryService.
func (s *DiaryServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.editable(ctx, id); err != nil {
		return err
	}
	if err := s.DiaryRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete diary: %w", err)
	}
	return nil
}

// editable loads a diary the caller owns and that is dated today.
func (s *DiaryServiceImpl) editable(ctx context.Context, id string) (diary.Diary, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return diary.Diary{}, err
	}
	d, err := s.DiaryRepository.GetByID(ctx, id)
	if err != nil {
		return diary.Diary{}, fmt.Errorf("get diary: %w", err)
	}
	if d.UserID != p.UserID {
		return diary.Diary{}, diary.ErrNotOwner
	}
	if utils.FormatDate(d.Date) != utils.FormatDate(s.clock.Now()) {
		return diary.Diary{}, diary.ErrNotEditableDay
	}
	return d, nil
}

// Today implements diary.DiaryService.
func (s *DiaryServiceImpl) Today(ctx context.Context) (*diary.DiaryResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.DiaryRepository.GetByUserAndDate(ctx, p.UserID, utils.StartOfDay(s.clock.Now()))
	if err != nil {
		if errors.Is(err, diary.ErrDiaryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get today's diary: %w", err)
	}
	resp := diary.NewDiaryResponse(d)
	return &resp, nil
}

// Statistics implements diary.DiaryService.
func (s *DiaryServiceImpl) Statistics(ctx context.Context, month string) (diary.StatisticsResponse, error) {
	p, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return diary.StatisticsResponse{}, err
	}
	year, mon, err := utils.ParseMonth(month, s.clock.Now())
	if err != nil {
		return diary.StatisticsResponse{}, err
	}

	from, to := utils.MonthRange(year, mon, s.clock.Location())
	scope := p.OwnerScope(user.PermissionDiaryViewAll)
	counts, err := s.DiaryRepository.CountByUser(ctx, scope, from, to)
	if err != nil {
		return diary.StatisticsResponse{}, fmt.Errorf("failed to count diaries: %w", err)
	}
	return diary.NewStatisticsResponse(utils.FormatMonth(year, mon), counts, scope == nil), nil
}
