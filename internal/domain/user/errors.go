package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserEmailExists    = errors.New("email already registered")
	ErrUserInactive       = errors.New("user is inactive")
	ErrRoleNotFound       = errors.New("role not found")
	ErrRoleNameExists     = errors.New("role name already exists")
	ErrRoleInUse          = errors.New("role is still assigned to users")
	ErrRoleParentMissing  = errors.New("parent role not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrAdminRequired      = errors.New("administrator permission required")
)
