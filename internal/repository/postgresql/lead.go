package postgresql

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/lead"
	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
	"github.com/leadwise/crm-backend-go/internal/pkg/database"
)

type leadRepositoryImpl struct {
	db *database.DB
}

func NewLeadRepository(db *database.DB) lead.Repository {
	return &leadRepositoryImpl{db: db}
}

const leadColumns = `id, name, email, phone, source, status, is_login_lead,
	created_by, assigned_to, assign_report_to, created_at, updated_at`

// Create implements lead.Repository.
func (r *leadRepositoryImpl) Create(ctx context.Context, newLead lead.Lead) (lead.Lead, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leads (name, email, phone, source, status, is_login_lead,
			created_by, assigned_to, assign_report_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + leadColumns

	return scanLead(q.QueryRow(ctx, query,
		newLead.Name,
		newLead.Email,
		newLead.Phone,
		newLead.Source,
		newLead.Status,
		newLead.IsLoginLead,
		newLead.CreatedBy,
		newLead.AssignedTo,
		newLead.AssignReportTo,
	))
}

func scanLead(row pgx.Row) (lead.Lead, error) {
	var l lead.Lead
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Email,
		&l.Phone,
		&l.Source,
		&l.Status,
		&l.IsLoginLead,
		&l.CreatedBy,
		&l.AssignedTo,
		&l.AssignReportTo,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

// GetByID implements lead.Repository.
func (r *leadRepositoryImpl) GetByID(ctx context.Context, id string) (lead.Lead, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return scanLead(q.QueryRow(ctx, query, id))
}

// List implements lead.Repository. The visibility filter from the engine is
// compiled into the WHERE clause so rows the actor cannot see are excluded
// inside the store rather than post-filtered in memory.
func (r *leadRepositoryImpl) List(ctx context.Context, visible visibility.Filter, filter lead.Filter) ([]lead.Lead, int64, error) {
	q := GetQuerier(ctx, r.db)

	b := newFilterBuilder()
	conds := []string{b.clause(visible)}
	if filter.Status != nil {
		conds = append(conds, "status = "+b.bind(*filter.Status))
	}
	if filter.Search != nil && *filter.Search != "" {
		ph := b.bind("%" + *filter.Search + "%")
		conds = append(conds, "(name ILIKE "+ph+" OR email ILIKE "+ph+")")
	}
	if filter.LoginOnly {
		conds = append(conds, "is_login_lead = TRUE")
	} else {
		conds = append(conds, "is_login_lead = FALSE")
	}
	where := strings.Join(conds, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM leads WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageToLimitOffset(filter.Page, filter.Limit)
	query := `SELECT ` + leadColumns + ` FROM leads WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT ` + b.bind(limit) + ` OFFSET ` + b.bind(offset)

	rows, err := q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leads []lead.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, l)
	}

	return leads, total, rows.Err()
}

// Update implements lead.Repository.
func (r *leadRepositoryImpl) Update(ctx context.Context, req lead.UpdateLeadRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leads
		SET name = COALESCE($1, name),
		    email = COALESCE($2, email),
		    phone = COALESCE($3, phone),
		    source = COALESCE($4, source),
		    status = COALESCE($5, status),
		    updated_at = NOW()
		WHERE id = $6
	`
	tag, err := q.Exec(ctx, query, req.Name, req.Email, req.Phone, req.Source, req.Status, req.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return lead.ErrLeadNotFound
	}
	return nil
}

// SetAssignees implements lead.Repository. Assignees are stored as a jsonb
// list even when a single user is assigned; the scalar form only appears in
// rows written by older clients.
func (r *leadRepositoryImpl) SetAssignees(ctx context.Context, id string, assignees []string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE leads SET assigned_to = $1, updated_at = NOW() WHERE id = $2`,
		visibility.AssigneeList(assignees), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return lead.ErrLeadNotFound
	}
	return nil
}

// SetReporters implements lead.Repository.
func (r *leadRepositoryImpl) SetReporters(ctx context.Context, id string, reporters []string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE leads SET assign_report_to = $1, updated_at = NOW() WHERE id = $2`,
		reporters, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return lead.ErrLeadNotFound
	}
	return nil
}

// SetLoginLead implements lead.Repository.
func (r *leadRepositoryImpl) SetLoginLead(ctx context.Context, id string, isLogin bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE leads SET is_login_lead = $1, updated_at = NOW() WHERE id = $2`,
		isLogin, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return lead.ErrLeadNotFound
	}
	return nil
}

// Delete implements lead.Repository.
func (r *leadRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return lead.ErrLeadNotFound
	}
	return nil
}

// AddActivity implements lead.Repository.
func (r *leadRepositoryImpl) AddActivity(ctx context.Context, activity lead.Activity) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`INSERT INTO lead_activities (lead_id, actor_id, action, detail) VALUES ($1, $2, $3, $4)`,
		activity.LeadID, activity.ActorID, activity.Action, activity.Detail)
	return err
}

// ListActivities implements lead.Repository.
func (r *leadRepositoryImpl) ListActivities(ctx context.Context, leadID string) ([]lead.Activity, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT id, lead_id, actor_id, action, detail, created_at
		 FROM lead_activities WHERE lead_id = $1 ORDER BY created_at DESC`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []lead.Activity
	for rows.Next() {
		var a lead.Activity
		if err := rows.Scan(&a.ID, &a.LeadID, &a.ActorID, &a.Action, &a.Detail, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
