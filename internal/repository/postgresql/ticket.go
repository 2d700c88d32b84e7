package postgresql

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/ticket"
	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
	"github.com/leadwise/crm-backend-go/internal/pkg/database"
)

type ticketRepositoryImpl struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) ticket.Repository {
	return &ticketRepositoryImpl{db: db}
}

const ticketColumns = `id, subject, body, priority, status, created_by,
	assigned_to, created_at, updated_at, closed_at`

func scanTicket(row pgx.Row) (ticket.Ticket, error) {
	var t ticket.Ticket
	err := row.Scan(
		&t.ID,
		&t.Subject,
		&t.Body,
		&t.Priority,
		&t.Status,
		&t.CreatedBy,
		&t.AssignedTo,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.ClosedAt,
	)
	return t, err
}

// Create implements ticket.Repository.
func (r *ticketRepositoryImpl) Create(ctx context.Context, newTicket ticket.Ticket) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tickets (subject, body, priority, status, created_by, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + ticketColumns

	return scanTicket(q.QueryRow(ctx, query,
		newTicket.Subject,
		newTicket.Body,
		newTicket.Priority,
		newTicket.Status,
		newTicket.CreatedBy,
		newTicket.AssignedTo,
	))
}

// GetByID implements ticket.Repository.
func (r *ticketRepositoryImpl) GetByID(ctx context.Context, id string) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	return scanTicket(q.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id))
}

// List implements ticket.Repository.
func (r *ticketRepositoryImpl) List(ctx context.Context, visible visibility.Filter, filter ticket.Filter) ([]ticket.Ticket, int64, error) {
	q := GetQuerier(ctx, r.db)

	b := newFilterBuilder()
	conds := []string{b.clause(visible)}
	if filter.Status != nil {
		conds = append(conds, "status = "+b.bind(*filter.Status))
	}
	if filter.Priority != nil {
		conds = append(conds, "priority = "+b.bind(*filter.Priority))
	}
	if filter.Search != nil && *filter.Search != "" {
		ph := b.bind("%" + *filter.Search + "%")
		conds = append(conds, "(subject ILIKE "+ph+" OR body ILIKE "+ph+")")
	}
	where := strings.Join(conds, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE `+where, b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageToLimitOffset(filter.Page, filter.Limit)
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT ` + b.bind(limit) + ` OFFSET ` + b.bind(offset)

	rows, err := q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tickets []ticket.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}

	return tickets, total, rows.Err()
}

// Update implements ticket.Repository.
func (r *ticketRepositoryImpl) Update(ctx context.Context, req ticket.UpdateTicketRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tickets
		SET subject = COALESCE($1, subject),
		    body = COALESCE($2, body),
		    priority = COALESCE($3, priority),
		    updated_at = NOW()
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, req.Subject, req.Body, req.Priority, req.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ticket.ErrTicketNotFound
	}
	return nil
}

// SetAssignees implements ticket.Repository.
func (r *ticketRepositoryImpl) SetAssignees(ctx context.Context, id string, assignees []string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE tickets SET assigned_to = $1, updated_at = NOW() WHERE id = $2`,
		visibility.AssigneeList(assignees), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ticket.ErrTicketNotFound
	}
	return nil
}

// SetStatus implements ticket.Repository. Closing or resolving stamps
// closed_at; reopening clears it.
func (r *ticketRepositoryImpl) SetStatus(ctx context.Context, id string, status string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tickets
		SET status = $1,
		    closed_at = CASE WHEN $1 IN ('resolved', 'closed') THEN NOW() ELSE NULL END,
		    updated_at = NOW()
		WHERE id = $2
	`
	tag, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ticket.ErrTicketNotFound
	}
	return nil
}

// Delete implements ticket.Repository.
func (r *ticketRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ticket.ErrTicketNotFound
	}
	return nil
}

// CloseStaleOpen implements ticket.Repository.
func (r *ticketRepositoryImpl) CloseStaleOpen(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE tickets
		SET status = $1, closed_at = NOW(), updated_at = NOW()
		WHERE status = $2 AND updated_at < $3
	`, ticket.StatusClosed, ticket.StatusOpen, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
