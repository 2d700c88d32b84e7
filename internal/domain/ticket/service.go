package ticket

import (
	"context"
)

type Service interface {
	Create(ctx context.Context, actorID string, req CreateTicketRequest) (TicketResponse, error)
	Get(ctx context.Context, actorID string, id string) (TicketResponse, error)
	List(ctx context.Context, actorID string, filter Filter) ([]TicketResponse, int64, error)
	Update(ctx context.Context, actorID string, req UpdateTicketRequest) error
	Assign(ctx context.Context, actorID string, id string, assignees []string) error
	SetStatus(ctx context.Context, actorID string, id string, status string) error
	Delete(ctx context.Context, actorID string, id string) error
}
