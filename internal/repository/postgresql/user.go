package postgresql

import (
	"context"
	"strings"

	"github.com/leadwise/crm-backend-go/internal/domain/user"
	"github.com/leadwise/crm-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, email, name, role_id, department_id, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.RoleID,
		&u.DepartmentID,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, name, role_id, department_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	return scanUser(q.QueryRow(ctx, query,
		newUser.Email,
		newUser.Name,
		newUser.RoleID,
		newUser.DepartmentID,
		newUser.IsActive,
	))
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.QueryRow(ctx, query, id))
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(q.QueryRow(ctx, query, email))
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	b := newFilterBuilder()
	conds := []string{"TRUE"}
	if filter.RoleID != nil {
		conds = append(conds, "u.role_id = "+b.bind(*filter.RoleID))
	}
	if filter.DepartmentID != nil {
		conds = append(conds, "u.department_id = "+b.bind(*filter.DepartmentID))
	}
	if filter.Search != nil && *filter.Search != "" {
		ph := b.bind("%" + *filter.Search + "%")
		conds = append(conds, "(u.name ILIKE "+ph+" OR u.email ILIKE "+ph+")")
	}
	where := strings.Join(conds, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM users u WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageToLimitOffset(filter.Page, filter.Limit)
	query := `
		SELECT u.id, u.email, u.name, u.role_id, u.department_id, u.is_active,
		       u.created_at, u.updated_at, r.name, d.name
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		LEFT JOIN departments d ON d.id = u.department_id
		WHERE ` + where + `
		ORDER BY u.created_at DESC
		LIMIT ` + b.bind(limit) + ` OFFSET ` + b.bind(offset)

	rows, err := q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.Name,
			&u.RoleID,
			&u.DepartmentID,
			&u.IsActive,
			&u.CreatedAt,
			&u.UpdatedAt,
			&u.RoleName,
			&u.DepartmentName,
		); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}

	return users, total, rows.Err()
}

// ListByRole implements user.UserRepository.
func (r *userRepositoryImpl) ListByRole(ctx context.Context, roleID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE role_id = $1 AND is_active = TRUE`
	rows, err := q.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET name = COALESCE($1, name),
		    role_id = COALESCE($2, role_id),
		    department_id = COALESCE($3, department_id),
		    updated_at = NOW()
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, req.Name, req.RoleID, req.DepartmentID, req.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// SetActive implements user.UserRepository.
func (r *userRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// pageToLimitOffset normalizes pagination input.
func pageToLimitOffset(page, limit int) (int, int) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}
