package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrScheduleExists   = errors.New("a schedule already exists for this intern and day")
)
