package ticket

import (
	"time"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

// Ticket statuses
const (
	StatusOpen     = "open"
	StatusPending  = "pending"
	StatusResolved = "resolved"
	StatusClosed   = "closed"
)

// Ticket priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Ticket struct {
	ID         string
	Subject    string
	Body       string
	Priority   string
	Status     string
	CreatedBy  string
	AssignedTo visibility.AssigneeList
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ClosedAt   *time.Time
}

// VisibilityRecord reduces the ticket to the ownership view the engine reads.
func (t Ticket) VisibilityRecord() visibility.Record {
	return visibility.Record{
		Module:     visibility.ModuleTickets,
		CreatedBy:  t.CreatedBy,
		AssignedTo: t.AssignedTo,
	}
}
