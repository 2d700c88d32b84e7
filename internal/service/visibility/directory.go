package visibility

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/user"
	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

// repoDirectory adapts the org repositories to the directory views the
// engine traverses. Users without a role resolve to nil so traversal
// starts empty instead of erroring.
type repoDirectory struct {
	users user.UserRepository
	roles user.RoleRepository
}

// NewDirectory wraps the org repositories as both directories.
func NewDirectory(users user.UserRepository, roles user.RoleRepository) (visibility.RoleDirectory, visibility.UserDirectory) {
	d := &repoDirectory{users: users, roles: roles}
	return d, d
}

// GetUser implements visibility.RoleDirectory.
func (d *repoDirectory) GetUser(ctx context.Context, userID string) (*visibility.User, error) {
	u, err := d.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if u.RoleID == nil {
		return nil, nil
	}
	return &visibility.User{ID: u.ID, RoleID: *u.RoleID}, nil
}

// GetChildRoles implements visibility.RoleDirectory.
func (d *repoDirectory) GetChildRoles(ctx context.Context, roleID string) ([]visibility.Role, error) {
	children, err := d.roles.GetChildren(ctx, roleID)
	if err != nil {
		return nil, err
	}

	out := make([]visibility.Role, 0, len(children))
	for _, r := range children {
		out = append(out, visibility.Role{
			ID:           r.ID,
			ParentRoleID: r.ParentRoleID,
			Name:         r.Name,
		})
	}
	return out, nil
}

// GetUsersByRole implements visibility.UserDirectory.
func (d *repoDirectory) GetUsersByRole(ctx context.Context, roleID string) ([]visibility.User, error) {
	users, err := d.users.ListByRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	out := make([]visibility.User, 0, len(users))
	for _, u := range users {
		roleID := ""
		if u.RoleID != nil {
			roleID = *u.RoleID
		}
		out = append(out, visibility.User{ID: u.ID, RoleID: roleID})
	}
	return out, nil
}
