package http

import (
	"net/http"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/dashboard"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetStats returns today's counters and recent activity
	GetStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetStats handles GET /dashboard/stats
func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
