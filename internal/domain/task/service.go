package task

import (
	"context"
)

type Service interface {
	Create(ctx context.Context, actorID string, req CreateTaskRequest) (TaskResponse, error)
	Get(ctx context.Context, actorID string, id string) (TaskResponse, error)
	List(ctx context.Context, actorID string, filter Filter) ([]TaskResponse, int64, error)
	Update(ctx context.Context, actorID string, req UpdateTaskRequest) error
	Assign(ctx context.Context, actorID string, req AssignTaskRequest) error
	Complete(ctx context.Context, actorID string, id string) error
	Delete(ctx context.Context, actorID string, id string) error
}
