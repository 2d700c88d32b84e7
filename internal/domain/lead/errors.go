package lead

import "errors"

var (
	ErrLeadNotFound        = errors.New("lead not found")
	ErrLeadAccessDenied    = errors.New("not allowed to access this lead")
	ErrInvalidStatus       = errors.New("invalid lead status")
	ErrAlreadyInLoginQueue = errors.New("lead is already in the login queue")
	ErrNotAssignedToUser   = errors.New("lead is not assigned to that user")
)
