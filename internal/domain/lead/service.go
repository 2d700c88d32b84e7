package lead

import (
	"context"
)

// Service is the lead module's caller surface. Every operation checks the
// actor's visibility before touching the record; List pushes the
// engine-built filter into the store query.
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeadRequest) (LeadResponse, error)
	Get(ctx context.Context, actorID string, id string) (LeadResponse, error)
	List(ctx context.Context, actorID string, filter Filter) ([]LeadResponse, int64, error)
	ListLoginQueue(ctx context.Context, actorID string, filter Filter) ([]LeadResponse, int64, error)
	Update(ctx context.Context, actorID string, req UpdateLeadRequest) error
	Assign(ctx context.Context, actorID string, req AssignLeadRequest) error
	Transfer(ctx context.Context, actorID string, req TransferLeadRequest) error
	SetReporters(ctx context.Context, actorID string, req SetReportersRequest) error
	MoveToLoginQueue(ctx context.Context, actorID string, id string) error
	Delete(ctx context.Context, actorID string, id string) error
	Activities(ctx context.Context, actorID string, leadID string) ([]ActivityResponse, error)
}
