package intern

import "time"

type Intern struct {
	ID                    string
	UserID                string
	StudentID             string
	FullName              string
	School                string
	Course                string
	YearLevel             *string
	Phone                 *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	RequiredHours         int
	CompanyName           *string
	SupervisorName        *string
	SupervisorEmail       *string
	StartDate             time.Time
	EndDate               *time.Time
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// Join
	Email string
}
