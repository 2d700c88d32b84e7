package user

import (
	"context"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

// Service covers organization data: users, the role hierarchy and
// departments. Role and user lookups double as the directories the
// visibility engine traverses.
type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetUser(ctx context.Context, id string) (UserResponse, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) error
	SetUserActive(ctx context.Context, id string, active bool) error

	// PermissionsFor resolves the permission entries of the user's role.
	// A user without a role has no permissions, which downstream callers
	// treat as deny, not as an error.
	PermissionsFor(ctx context.Context, userID string) ([]visibility.Entry, error)

	CreateRole(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
	GetRole(ctx context.Context, id string) (RoleResponse, error)
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	UpdateRole(ctx context.Context, req UpdateRoleRequest) error
	DeleteRole(ctx context.Context, id string) error

	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error
}
