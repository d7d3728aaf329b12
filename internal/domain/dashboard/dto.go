package dashboard

// StatsResponse is the admin/supervisor overview for today.
type StatsResponse struct {
	Date             string           `json:"date"`
	TotalInterns     int64            `json:"total_interns"`
	ActiveToday      int64            `json:"active_today"`
	PendingApprovals int64            `json:"pending_approvals"`
	PendingLeaves    int64            `json:"pending_leaves"`
	AttendanceRate   float64          `json:"attendance_rate"` // percent of active interns clocked in today
	RecentActivity   []RecentActivity `json:"recent_activity"`
}

// RecentActivity is one of the latest clock events.
type RecentActivity struct {
	AttendanceID string  `json:"attendance_id"`
	InternName   string  `json:"intern_name"`
	Action       string  `json:"action"` // clock_in, clock_out
	Time         string  `json:"time"`
	Status       string  `json:"status"`
	IsLate       bool    `json:"is_late"`
	Location     *string `json:"location,omitempty"`
}
