package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/user"
	"github.com/leadwise/crm-backend-go/internal/pkg/database"
)

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) user.RoleRepository {
	return &roleRepositoryImpl{db: db}
}

const roleColumns = `id, name, parent_role_id, permissions, created_at, updated_at`

func scanRole(row pgx.Row) (user.Role, error) {
	var role user.Role
	err := row.Scan(
		&role.ID,
		&role.Name,
		&role.ParentRoleID,
		&role.Permissions,
		&role.CreatedAt,
		&role.UpdatedAt,
	)
	return role, err
}

// Create implements user.RoleRepository.
func (r *roleRepositoryImpl) Create(ctx context.Context, newRole user.Role) (user.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO roles (name, parent_role_id, permissions)
		VALUES ($1, $2, $3)
		RETURNING ` + roleColumns

	return scanRole(q.QueryRow(ctx, query, newRole.Name, newRole.ParentRoleID, newRole.Permissions))
}

// GetByID implements user.RoleRepository.
func (r *roleRepositoryImpl) GetByID(ctx context.Context, id string) (user.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + roleColumns + ` FROM roles WHERE id = $1`
	return scanRole(q.QueryRow(ctx, query, id))
}

// GetChildren implements user.RoleRepository.
func (r *roleRepositoryImpl) GetChildren(ctx context.Context, parentID string) ([]user.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + roleColumns + ` FROM roles WHERE parent_role_id = $1 ORDER BY name`
	rows, err := q.Query(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRoles(rows)
}

// List implements user.RoleRepository.
func (r *roleRepositoryImpl) List(ctx context.Context) ([]user.Role, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRoles(rows)
}

func collectRoles(rows pgx.Rows) ([]user.Role, error) {
	var roles []user.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// Update implements user.RoleRepository.
func (r *roleRepositoryImpl) Update(ctx context.Context, req user.UpdateRoleRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE roles
		SET name = COALESCE($1, name),
		    parent_role_id = COALESCE($2, parent_role_id),
		    permissions = COALESCE($3, permissions),
		    updated_at = NOW()
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, req.Name, req.ParentRoleID, req.Permissions, req.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrRoleNotFound
	}
	return nil
}

// Delete implements user.RoleRepository.
func (r *roleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrRoleNotFound
	}
	return nil
}
