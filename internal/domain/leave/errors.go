package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("this leave request has already been processed")
	ErrLeaveNotOwned         = errors.New("leave request belongs to another intern")
)
