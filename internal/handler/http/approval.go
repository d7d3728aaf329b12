package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/attendance"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/handler/http/response"
)

type ApprovalHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type approvalHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewApprovalHandler(attendanceService attendance.AttendanceService) ApprovalHandler {
	return &approvalHandlerImpl{attendanceService: attendanceService}
}

// List implements ApprovalHandler.
func (h *approvalHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, attendanceFilterFromQuery(r))
}

// ListPending implements ApprovalHandler.
func (h *approvalHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	filter := attendanceFilterFromQuery(r)
	pending := string(attendance.StatusPending)
	filter.Status = &pending
	h.list(w, r, filter)
}

func (h *approvalHandlerImpl) list(w http.ResponseWriter, r *http.Request, filter attendance.AttendanceFilter) {
	result, err := h.attendanceService.ListApprovals(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Approve implements ApprovalHandler. The body is optional.
func (h *approvalHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req attendance.ApproveAttendanceRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.ApproveAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance approved", result)
}

// Reject implements ApprovalHandler.
func (h *approvalHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req attendance.RejectAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.RejectAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance rejected", result)
}
