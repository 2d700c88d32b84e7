package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/notification"
	"github.com/leadwise/crm-backend-go/internal/domain/task"
	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

// PermissionSource resolves an actor's permission entries.
type PermissionSource interface {
	PermissionsFor(ctx context.Context, userID string) ([]visibility.Entry, error)
}

type serviceImpl struct {
	repo     task.Repository
	engine   visibility.Engine
	perms    PermissionSource
	notifier notification.Service
}

func NewService(
	repo task.Repository,
	engine visibility.Engine,
	perms PermissionSource,
	notifier notification.Service,
) task.Service {
	return &serviceImpl{
		repo:     repo,
		engine:   engine,
		perms:    perms,
		notifier: notifier,
	}
}

func (s *serviceImpl) Create(ctx context.Context, actorID string, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	entity := task.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      task.StatusOpen,
		DueDate:     req.ParsedDueDate,
		LeadID:      req.LeadID,
		CreatedBy:   actorID,
		AssignedTo:  visibility.AssigneeList(req.AssignedTo),
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.notify(ctx, created, actorID, created.AssignedTo, notification.TypeTaskAssigned,
		"New task assigned", fmt.Sprintf("You have been assigned task %q", created.Title))

	return toResponse(created), nil
}

func (s *serviceImpl) Get(ctx context.Context, actorID string, id string) (task.TaskResponse, error) {
	entity, err := s.authorize(ctx, actorID, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return toResponse(entity), nil
}

func (s *serviceImpl) List(ctx context.Context, actorID string, filter task.Filter) ([]task.TaskResponse, int64, error) {
	entries, err := s.perms.PermissionsFor(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}

	visible := s.engine.BuildFilter(ctx, actorID, entries, visibility.ModuleTasks, nil)

	tasks, total, err := s.repo.List(ctx, visible, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, toResponse(t))
	}
	return responses, total, nil
}

func (s *serviceImpl) Update(ctx context.Context, actorID string, req task.UpdateTaskRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.authorize(ctx, actorID, req.ID); err != nil {
		return err
	}

	return s.repo.Update(ctx, req)
}

func (s *serviceImpl) Assign(ctx context.Context, actorID string, req task.AssignTaskRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	entity, err := s.authorize(ctx, actorID, req.ID)
	if err != nil {
		return err
	}

	if err := s.repo.SetAssignees(ctx, req.ID, req.AssignedTo); err != nil {
		return err
	}

	s.notify(ctx, entity, actorID, req.AssignedTo, notification.TypeTaskAssigned,
		"Task assigned", fmt.Sprintf("You have been assigned task %q", entity.Title))
	return nil
}

func (s *serviceImpl) Complete(ctx context.Context, actorID string, id string) error {
	entity, err := s.authorize(ctx, actorID, id)
	if err != nil {
		return err
	}

	if entity.Status == task.StatusDone {
		return task.ErrTaskAlreadyDone
	}

	if err := s.repo.Complete(ctx, id); err != nil {
		return err
	}

	// The creator hears about completion unless they completed it themselves.
	if entity.CreatedBy != actorID {
		s.notify(ctx, entity, actorID, []string{entity.CreatedBy}, notification.TypeTaskCompleted,
			"Task completed", fmt.Sprintf("Task %q was completed", entity.Title))
	}
	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, actorID string, id string) error {
	if _, err := s.authorize(ctx, actorID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *serviceImpl) authorize(ctx context.Context, actorID string, id string) (task.Task, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}

	entries, err := s.perms.PermissionsFor(ctx, actorID)
	if err != nil {
		return task.Task{}, err
	}

	if !s.engine.CanView(ctx, entity.VisibilityRecord(), actorID, entries, visibility.ModuleTasks) {
		return task.Task{}, task.ErrTaskAccessDenied
	}
	return entity, nil
}

func (s *serviceImpl) notify(ctx context.Context, entity task.Task, actorID string, recipients []string, typ notification.NotificationType, title, message string) {
	if s.notifier == nil || len(recipients) == 0 {
		return
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(recipients))
	for _, recipientID := range recipients {
		if recipientID == actorID {
			continue
		}
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: recipientID,
			SenderID:    &actorID,
			Type:        typ,
			Title:       title,
			Message:     message,
			Data:        map[string]interface{}{"task_id": entity.ID},
		})
	}
	if len(reqs) == 0 {
		return
	}
	_ = s.notifier.QueueBulkNotification(ctx, reqs)
}

func toResponse(t task.Task) task.TaskResponse {
	resp := task.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		LeadID:      t.LeadID,
		CreatedBy:   t.CreatedBy,
		AssignedTo:  t.AssignedTo,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	if resp.AssignedTo == nil {
		resp.AssignedTo = []string{}
	}
	if t.DueDate != nil {
		due := t.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	if t.CompletedAt != nil {
		done := t.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &done
	}
	return resp
}
