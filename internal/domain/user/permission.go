package user

type Permission string

const (
	// Attendance
	PermissionAttendanceClock   Permission = "attendance.clock"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceUpdate  Permission = "attendance.update"
	PermissionAttendanceApprove Permission = "attendance.approve"

	// Leave
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Geofence
	PermissionGeofenceView   Permission = "geofence.view"
	PermissionGeofenceManage Permission = "geofence.manage"

	// Schedule
	PermissionScheduleViewOwn Permission = "schedule.view_own"
	PermissionScheduleManage  Permission = "schedule.manage"

	// Intern profiles
	PermissionInternManageOwn Permission = "intern.manage_own"
	PermissionInternViewAll   Permission = "intern.view_all"

	// Reports
	PermissionReportsView   Permission = "reports.view"
	PermissionDashboardView Permission = "dashboard.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceViewAll,
		PermissionAttendanceUpdate,
		PermissionAttendanceApprove,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionGeofenceView,
		PermissionGeofenceManage,
		PermissionScheduleManage,
		PermissionInternViewAll,
		PermissionReportsView,
		PermissionDashboardView,
	},
	RoleSupervisor: {
		PermissionAttendanceViewAll,
		PermissionAttendanceUpdate,
		PermissionAttendanceApprove,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionGeofenceView,
		PermissionScheduleManage,
		PermissionInternViewAll,
		PermissionReportsView,
		PermissionDashboardView,
	},
	RoleIntern: {
		PermissionAttendanceClock,
		PermissionAttendanceViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionGeofenceView,
		PermissionScheduleViewOwn,
		PermissionInternManageOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// HasCapabilities reports whether role holds every one of required.
// An empty set is always satisfied.
func HasCapabilities(role Role, required ...Permission) bool {
	for _, p := range required {
		if !HasPermission(role, p) {
			return false
		}
	}
	return true
}

// HasAnyCapability reports whether role holds at least one of the given permissions.
func HasAnyCapability(role Role, candidates ...Permission) bool {
	for _, p := range candidates {
		if HasPermission(role, p) {
			return true
		}
	}
	return false
}
