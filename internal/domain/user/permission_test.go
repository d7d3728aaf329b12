package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCapabilities(t *testing.T) {
	cases := []struct {
		name     string
		role     Role
		required []Permission
		want     bool
	}{
		{"intern clocks", RoleIntern, []Permission{PermissionAttendanceClock}, true},
		{"intern cannot approve", RoleIntern, []Permission{PermissionAttendanceApprove}, false},
		{"supervisor approves both", RoleSupervisor, []Permission{PermissionAttendanceApprove, PermissionLeaveApprove}, true},
		{"supervisor cannot manage geofences", RoleSupervisor, []Permission{PermissionGeofenceManage}, false},
		{"admin manages geofences", RoleAdmin, []Permission{PermissionGeofenceManage, PermissionGeofenceView}, true},
		{"admin does not clock", RoleAdmin, []Permission{PermissionAttendanceClock}, false},
		{"unknown role", Role("guest"), []Permission{PermissionGeofenceView}, false},
		{"empty requirement", Role("guest"), nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, HasCapabilities(c.role, c.required...))
		})
	}
}

func TestHasAnyCapability(t *testing.T) {
	assert.True(t, HasAnyCapability(RoleIntern, PermissionAttendanceViewAll, PermissionAttendanceViewOwn))
	assert.False(t, HasAnyCapability(RoleIntern, PermissionAttendanceViewAll, PermissionReportsView))
	assert.False(t, HasAnyCapability(RoleAdmin))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleSupervisor.Valid())
	assert.True(t, RoleIntern.Valid())
	assert.False(t, Role("owner").Valid())
}

func TestUser_CanApprove(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).CanApprove())
	assert.True(t, (&User{Role: RoleSupervisor}).CanApprove())
	assert.False(t, (&User{Role: RoleIntern}).CanApprove())
}
