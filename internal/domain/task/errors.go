package task

import "errors"

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskAccessDenied  = errors.New("not allowed to access this task")
	ErrTaskAlreadyDone   = errors.New("task is already completed")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)
