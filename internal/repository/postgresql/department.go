package postgresql

import (
	"context"

	"github.com/leadwise/crm-backend-go/internal/domain/user"
	"github.com/leadwise/crm-backend-go/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) user.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentColumns = `id, name, created_at, updated_at`

// Create implements user.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, dept user.Department) (user.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (name)
		VALUES ($1)
		RETURNING ` + departmentColumns

	var created user.Department
	err := q.QueryRow(ctx, query, dept.Name).Scan(
		&created.ID, &created.Name, &created.CreatedAt, &created.UpdatedAt,
	)
	return created, err
}

// GetByID implements user.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (user.Department, error) {
	q := GetQuerier(ctx, r.db)

	var dept user.Department
	err := q.QueryRow(ctx, `SELECT `+departmentColumns+` FROM departments WHERE id = $1`, id).Scan(
		&dept.ID, &dept.Name, &dept.CreatedAt, &dept.UpdatedAt,
	)
	return dept, err
}

// List implements user.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context) ([]user.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+departmentColumns+` FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var depts []user.Department
	for rows.Next() {
		var dept user.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.CreatedAt, &dept.UpdatedAt); err != nil {
			return nil, err
		}
		depts = append(depts, dept)
	}
	return depts, rows.Err()
}

// Delete implements user.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrDepartmentNotFound
	}
	return nil
}
