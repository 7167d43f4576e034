package http

import (
	"net/http"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/outing"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OutingHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	Current(w http.ResponseWriter, r *http.Request)
}

type outingHandlerImpl struct {
	outingService outing.OutingService
}

func NewOutingHandler(outingService outing.OutingService) OutingHandler {
	return &outingHandlerImpl{outingService: outingService}
}

// Submit implements OutingHandler.
func (h *outingHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req outing.CreateOutingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.outingService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Outing report submitted", created)
}

// Get implements OutingHandler.
func (h *outingHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.outingService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// List implements OutingHandler.
func (h *outingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := approvalFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.outingService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Update implements OutingHandler.
func (h *outingHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req outing.UpdateOutingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.outingService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Outing report updated", result)
}

// Decide implements OutingHandler.
func (h *outingHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	req, ok := decideRequest(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	result, err := h.outingService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Outing report "+result.Status, result)
}

// Delete implements OutingHandler.
func (h *outingHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.outingService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Outing report deleted", nil)
}

// Complete implements OutingHandler.
func (h *outingHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	result, err := h.outingService.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Return recorded", result)
}

// Current implements OutingHandler. data is null when no outing is in progress.
func (h *outingHandlerImpl) Current(w http.ResponseWriter, r *http.Request) {
	result, err := h.outingService.Current(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
