package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/schedule"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{scheduleService: scheduleService}
}

// Create implements ScheduleHandler.
func (h *scheduleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Schedule created", result)
}

// List implements ScheduleHandler. Interns only ever see their own schedules.
func (h *scheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.List(r.Context(), getStringQueryParam(r, "intern_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Get implements ScheduleHandler.
func (h *scheduleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Update implements ScheduleHandler.
func (h *scheduleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.scheduleService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Schedule updated", result)
}

// Delete implements ScheduleHandler.
func (h *scheduleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Schedule deleted", nil)
}

// Assign implements ScheduleHandler.
func (h *scheduleHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req schedule.AssignScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Default schedule assigned to all active interns", result)
}
