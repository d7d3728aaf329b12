package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/geofence"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/handler/http/response"
)

type GeofenceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type geofenceHandlerImpl struct {
	geofenceService geofence.GeofenceService
}

func NewGeofenceHandler(geofenceService geofence.GeofenceService) GeofenceHandler {
	return &geofenceHandlerImpl{geofenceService: geofenceService}
}

// Create implements GeofenceHandler.
func (h *geofenceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req geofence.CreateGeofenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.geofenceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Geofence location created", result)
}

// List implements GeofenceHandler.
func (h *geofenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.geofenceService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Get implements GeofenceHandler.
func (h *geofenceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.geofenceService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Update implements GeofenceHandler.
func (h *geofenceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req geofence.UpdateGeofenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.geofenceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Geofence location updated", result)
}

// Delete implements GeofenceHandler.
func (h *geofenceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.geofenceService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Geofence location deleted", nil)
}
