package user

import (
	"time"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

type User struct {
	ID           string
	Email        string
	Name         string
	RoleID       *string
	DepartmentID *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	RoleName       *string
	DepartmentName *string
}

// Role is one node of the reporting hierarchy and carries the permission
// entries granted to its users. Roles form a forest via ParentRoleID.
type Role struct {
	ID           string
	Name         string
	ParentRoleID *string
	Permissions  []visibility.Entry
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Department struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
