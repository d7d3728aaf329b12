package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"      // Full access
	RoleSupervisor Role = "supervisor" // Approves attendance and leave, views reports
	RoleIntern     Role = "intern"     // Clocks in/out and files leave
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleIntern:
		return true
	}
	return false
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	InternID *string
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSupervisor checks if user is a supervisor
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

// IsIntern checks if user is an intern
func (u *User) IsIntern() bool {
	return u.Role == RoleIntern
}

// CanApprove checks if user can approve attendance and leave
func (u *User) CanApprove() bool {
	return HasCapabilities(u.Role, PermissionAttendanceApprove, PermissionLeaveApprove)
}
