package task

import (
	"context"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

type Repository interface {
	Create(ctx context.Context, newTask Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	List(ctx context.Context, visible visibility.Filter, filter Filter) ([]Task, int64, error)
	Update(ctx context.Context, req UpdateTaskRequest) error
	SetAssignees(ctx context.Context, id string, assignees []string) error
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
