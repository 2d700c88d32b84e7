package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)
	ListByRole(ctx context.Context, roleID string) ([]User, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	SetActive(ctx context.Context, id string, active bool) error
}

type RoleRepository interface {
	Create(ctx context.Context, newRole Role) (Role, error)
	GetByID(ctx context.Context, id string) (Role, error)
	GetChildren(ctx context.Context, parentID string) ([]Role, error)
	List(ctx context.Context) ([]Role, error)
	Update(ctx context.Context, req UpdateRoleRequest) error
	Delete(ctx context.Context, id string) error
}

type DepartmentRepository interface {
	Create(ctx context.Context, newDepartment Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	List(ctx context.Context) ([]Department, error)
	Delete(ctx context.Context, id string) error
}
