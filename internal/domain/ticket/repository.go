package ticket

import (
	"context"
	"time"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

type Repository interface {
	Create(ctx context.Context, newTicket Ticket) (Ticket, error)
	GetByID(ctx context.Context, id string) (Ticket, error)
	List(ctx context.Context, visible visibility.Filter, filter Filter) ([]Ticket, int64, error)
	Update(ctx context.Context, req UpdateTicketRequest) error
	SetAssignees(ctx context.Context, id string, assignees []string) error
	SetStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error

	// CloseStaleOpen closes open tickets untouched since the cutoff and
	// returns how many were closed. Used by the scheduler.
	CloseStaleOpen(ctx context.Context, cutoff time.Time) (int64, error)
}
