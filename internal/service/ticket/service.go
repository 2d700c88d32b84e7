package ticket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/notification"
	"github.com/leadwise/crm-backend-go/internal/domain/ticket"
	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

// PermissionSource resolves an actor's permission entries.
type PermissionSource interface {
	PermissionsFor(ctx context.Context, userID string) ([]visibility.Entry, error)
}

type serviceImpl struct {
	repo     ticket.Repository
	engine   visibility.Engine
	perms    PermissionSource
	notifier notification.Service
}

func NewService(
	repo ticket.Repository,
	engine visibility.Engine,
	perms PermissionSource,
	notifier notification.Service,
) ticket.Service {
	return &serviceImpl{
		repo:     repo,
		engine:   engine,
		perms:    perms,
		notifier: notifier,
	}
}

func (s *serviceImpl) Create(ctx context.Context, actorID string, req ticket.CreateTicketRequest) (ticket.TicketResponse, error) {
	if err := req.Validate(); err != nil {
		return ticket.TicketResponse{}, err
	}

	priority := req.Priority
	if priority == "" {
		priority = ticket.PriorityMedium
	}

	entity := ticket.Ticket{
		Subject:    req.Subject,
		Body:       req.Body,
		Priority:   priority,
		Status:     ticket.StatusOpen,
		CreatedBy:  actorID,
		AssignedTo: visibility.AssigneeList(req.AssignedTo),
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return ticket.TicketResponse{}, fmt.Errorf("failed to create ticket: %w", err)
	}

	s.notify(ctx, created, actorID, created.AssignedTo,
		"New ticket assigned", fmt.Sprintf("You have been assigned ticket %q", created.Subject))

	return toResponse(created), nil
}

func (s *serviceImpl) Get(ctx context.Context, actorID string, id string) (ticket.TicketResponse, error) {
	entity, err := s.authorize(ctx, actorID, id)
	if err != nil {
		return ticket.TicketResponse{}, err
	}
	return toResponse(entity), nil
}

func (s *serviceImpl) List(ctx context.Context, actorID string, filter ticket.Filter) ([]ticket.TicketResponse, int64, error) {
	entries, err := s.perms.PermissionsFor(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}

	visible := s.engine.BuildFilter(ctx, actorID, entries, visibility.ModuleTickets, nil)

	tickets, total, err := s.repo.List(ctx, visible, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ticket.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		responses = append(responses, toResponse(t))
	}
	return responses, total, nil
}

func (s *serviceImpl) Update(ctx context.Context, actorID string, req ticket.UpdateTicketRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	entity, err := s.authorize(ctx, actorID, req.ID)
	if err != nil {
		return err
	}
	if entity.Status == ticket.StatusClosed {
		return ticket.ErrTicketClosed
	}

	return s.repo.Update(ctx, req)
}

func (s *serviceImpl) Assign(ctx context.Context, actorID string, id string, assignees []string) error {
	entity, err := s.authorize(ctx, actorID, id)
	if err != nil {
		return err
	}
	if entity.Status == ticket.StatusClosed {
		return ticket.ErrTicketClosed
	}

	if err := s.repo.SetAssignees(ctx, id, assignees); err != nil {
		return err
	}

	s.notify(ctx, entity, actorID, assignees,
		"Ticket assigned", fmt.Sprintf("You have been assigned ticket %q", entity.Subject))
	return nil
}

func (s *serviceImpl) SetStatus(ctx context.Context, actorID string, id string, status string) error {
	switch status {
	case ticket.StatusOpen, ticket.StatusPending, ticket.StatusResolved, ticket.StatusClosed:
	default:
		return fmt.Errorf("invalid ticket status %q", status)
	}

	if _, err := s.authorize(ctx, actorID, id); err != nil {
		return err
	}

	return s.repo.SetStatus(ctx, id, status)
}

func (s *serviceImpl) Delete(ctx context.Context, actorID string, id string) error {
	if _, err := s.authorize(ctx, actorID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *serviceImpl) authorize(ctx context.Context, actorID string, id string) (ticket.Ticket, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		return ticket.Ticket{}, err
	}

	entries, err := s.perms.PermissionsFor(ctx, actorID)
	if err != nil {
		return ticket.Ticket{}, err
	}

	if !s.engine.CanView(ctx, entity.VisibilityRecord(), actorID, entries, visibility.ModuleTickets) {
		return ticket.Ticket{}, ticket.ErrTicketAccessDenied
	}
	return entity, nil
}

func (s *serviceImpl) notify(ctx context.Context, entity ticket.Ticket, actorID string, recipients []string, title, message string) {
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
			Type:        notification.TypeTicketAssigned,
			Title:       title,
			Message:     message,
			Data:        map[string]interface{}{"ticket_id": entity.ID},
		})
	}
	if len(reqs) == 0 {
		return
	}
	_ = s.notifier.QueueBulkNotification(ctx, reqs)
}

func toResponse(t ticket.Ticket) ticket.TicketResponse {
	resp := ticket.TicketResponse{
		ID:         t.ID,
		Subject:    t.Subject,
		Body:       t.Body,
		Priority:   t.Priority,
		Status:     t.Status,
		CreatedBy:  t.CreatedBy,
		AssignedTo: t.AssignedTo,
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  t.UpdatedAt.Format(time.RFC3339),
	}
	if resp.AssignedTo == nil {
		resp.AssignedTo = []string{}
	}
	if t.ClosedAt != nil {
		closed := t.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &closed
	}
	return resp
}
