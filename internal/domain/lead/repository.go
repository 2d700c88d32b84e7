package lead

import (
	"context"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

// Repository persists leads and their activity timeline. List applies the
// engine-built visibility filter in the store query itself so restricted
// rows never leave the database.
type Repository interface {
	Create(ctx context.Context, newLead Lead) (Lead, error)
	GetByID(ctx context.Context, id string) (Lead, error)
	List(ctx context.Context, visible visibility.Filter, filter Filter) ([]Lead, int64, error)
	Update(ctx context.Context, req UpdateLeadRequest) error
	SetAssignees(ctx context.Context, id string, assignees []string) error
	SetReporters(ctx context.Context, id string, reporters []string) error
	SetLoginLead(ctx context.Context, id string, isLogin bool) error
	Delete(ctx context.Context, id string) error

	AddActivity(ctx context.Context, activity Activity) error
	ListActivities(ctx context.Context, leadID string) ([]Activity, error)
}
