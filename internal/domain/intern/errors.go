package intern

import "errors"

var (
	ErrInternNotFound       = errors.New("intern profile not found")
	ErrProfileAlreadyExists = errors.New("intern profile already exists")
	ErrInternInactive       = errors.New("intern profile is inactive")
)
