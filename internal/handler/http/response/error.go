package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/attendance"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/auth"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/geofence"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/intern"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/leave"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/report"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/schedule"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/evaluator"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/validator"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var zoneErr *evaluator.ZoneViolationError
	if errors.As(err, &zoneErr) {
		writeJSON(w, http.StatusForbidden, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "OUTSIDE_GEOFENCE",
				Message: "You are outside the allowed geofence area",
				Details: map[string]string{
					"distance_meters": fmt.Sprintf("%.2f", zoneErr.DistanceMeters),
					"radius_meters":   fmt.Sprintf("%d", zoneErr.RadiusMeters),
				},
			},
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingClaims):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAccountInactive), errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Intern domain errors
	case errors.Is(err, intern.ErrInternNotFound):
		NotFound(w, "Intern profile not found")
	case errors.Is(err, intern.ErrProfileAlreadyExists):
		Conflict(w, "Intern profile already exists")
	case errors.Is(err, intern.ErrInternInactive):
		Forbidden(w, "Intern profile is inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut),
		errors.Is(err, attendance.ErrAttendanceAlreadyProcessed),
		errors.Is(err, attendance.ErrBreakAlreadyStarted),
		errors.Is(err, attendance.ErrBreakAlreadyEnded):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrBreakNotStarted),
		errors.Is(err, attendance.ErrInvalidGeofence):
		BadRequest(w, err.Error(), nil)

	// Photo errors
	case errors.Is(err, file.ErrInvalidPhoto), errors.Is(err, file.ErrPhotoTooLarge):
		ValidationError(w, map[string]string{"photo": err.Error()})

	// Geofence and schedule errors
	case errors.Is(err, geofence.ErrGeofenceNotFound):
		NotFound(w, "Geofence location not found")
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrScheduleExists):
		Conflict(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveNotOwned):
		Forbidden(w, err.Error())
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Report errors
	case errors.Is(err, report.ErrInvalidDateRange),
		errors.Is(err, report.ErrDateRangeTooLarge),
		errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrReportGenerationFailed):
		slog.Error("Report generation failed", "error", err)
		InternalServerError(w, "Failed to generate report")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
