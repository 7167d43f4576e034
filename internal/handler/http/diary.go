package http

import (
	"net/http"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/diary"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DiaryHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Statistics(w http.ResponseWriter, r *http.Request)
}

type diaryHandlerImpl struct {
	diaryService diary.DiaryService
}

func NewDiaryHandler(diaryService diary.DiaryService) DiaryHandler {
	return &diaryHandlerImpl{diaryService: diaryService}
}

// Create implements DiaryHandler.
func (h *diaryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req diary.CreateDiaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.diaryService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Diary created", created)
}

// Get implements DiaryHandler.
func (h *diaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.diaryService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// List implements DiaryHandler.
func (h *diaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	p, err := queryPagination(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter := diary.DiaryFilter{
		UserID:     queryPtr(r, "user_id"),
		StartDate:  queryPtr(r, "start_date"),
		EndDate:    queryPtr(r, "end_date"),
		Pagination: p,
	}
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.diaryService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Update implements DiaryHandler.
func (h *diaryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req diary.UpdateDiaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.diaryService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Diary updated", result)
}

// Delete implements DiaryHandler.
func (h *diaryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.diaryService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Diary deleted", nil)
}

// Today implements DiaryHandler.
func (h *diaryHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.diaryService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Statistics implements DiaryHandler.
func (h *diaryHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.diaryService.Statistics(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
