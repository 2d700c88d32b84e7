package postgresql

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/task"
	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
	"github.com/leadwise/crm-backend-go/internal/pkg/database"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.Repository {
	return &taskRepositoryImpl{db: db}
}

const taskColumns = `id, title, description, status, due_date, lead_id,
	created_by, assigned_to, created_at, updated_at, completed_at`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.DueDate,
		&t.LeadID,
		&t.CreatedBy,
		&t.AssignedTo,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.CompletedAt,
	)
	return t, err
}

// Create implements task.Repository.
func (r *taskRepositoryImpl) Create(ctx context.Context, newTask task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (title, description, status, due_date, lead_id, created_by, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + taskColumns

	return scanTask(q.QueryRow(ctx, query,
		newTask.Title,
		newTask.Description,
		newTask.Status,
		newTask.DueDate,
		newTask.LeadID,
		newTask.CreatedBy,
		newTask.AssignedTo,
	))
}

// GetByID implements task.Repository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	return scanTask(q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
}

// List implements task.Repository.
func (r *taskRepositoryImpl) List(ctx context.Context, visible visibility.Filter, filter task.Filter) ([]task.Task, int64, error) {
	q := GetQuerier(ctx, r.db)

	b := newFilterBuilder()
	conds := []string{b.clause(visible)}
	if filter.Status != nil {
		conds = append(conds, "status = "+b.bind(*filter.Status))
	}
	if filter.LeadID != nil {
		conds = append(conds, "lead_id = "+b.bind(*filter.LeadID))
	}
	if filter.Search != nil && *filter.Search != "" {
		conds = append(conds, "title ILIKE "+b.bind("%"+*filter.Search+"%"))
	}
	where := strings.Join(conds, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE `+where, b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageToLimitOffset(filter.Page, filter.Limit)
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + where + `
		ORDER BY due_date ASC NULLS LAST, created_at DESC
		LIMIT ` + b.bind(limit) + ` OFFSET ` + b.bind(offset)

	rows, err := q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}

	return tasks, total, rows.Err()
}

// Update implements task.Repository.
func (r *taskRepositoryImpl) Update(ctx context.Context, req task.UpdateTaskRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    status = COALESCE($3, status),
		    updated_at = NOW()
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, req.Title, req.Description, req.Status, req.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// SetAssignees implements task.Repository.
func (r *taskRepositoryImpl) SetAssignees(ctx context.Context, id string, assignees []string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE tasks SET assigned_to = $1, updated_at = NOW() WHERE id = $2`,
		visibility.AssigneeList(assignees), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// Complete implements task.Repository.
func (r *taskRepositoryImpl) Complete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE tasks SET status = $1, completed_at = NOW(), updated_at = NOW() WHERE id = $2`,
		task.StatusDone, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// Delete implements task.Repository.
func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}
