package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/intern"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/handler/http/response"
)

type InternHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	CreateProfile(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type internHandlerImpl struct {
	internService intern.InternService
}

func NewInternHandler(internService intern.InternService) InternHandler {
	return &internHandlerImpl{internService: internService}
}

// Me implements InternHandler.
func (h *internHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	result, err := h.internService.Me(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// CreateProfile implements InternHandler.
func (h *internHandlerImpl) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req intern.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create intern profile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.internService.CreateProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Intern profile created", result)
}

// List implements InternHandler.
func (h *internHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := intern.InternFilter{
		Search: getStringQueryParam(r, "search"),
		Page:   getIntQueryParam(r, "page", defaultPage),
		Limit:  getIntQueryParam(r, "limit", defaultLimit),
	}
	if v := r.URL.Query().Get("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(w, "is_active must be true or false", nil)
			return
		}
		filter.IsActive = &active
	}

	result, err := h.internService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Get implements InternHandler.
func (h *internHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.internService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
