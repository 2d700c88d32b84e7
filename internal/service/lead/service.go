package lead

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/lead"
	"github.com/leadwise/crm-backend-go/internal/domain/notification"
	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

// PermissionSource resolves an actor's permission entries. The org service
// satisfies it.
type PermissionSource interface {
	PermissionsFor(ctx context.Context, userID string) ([]visibility.Entry, error)
}

type serviceImpl struct {
	repo     lead.Repository
	engine   visibility.Engine
	perms    PermissionSource
	notifier notification.Service
}

func NewService(
	repo lead.Repository,
	engine visibility.Engine,
	perms PermissionSource,
	notifier notification.Service,
) lead.Service {
	return &serviceImpl{
		repo:     repo,
		engine:   engine,
		perms:    perms,
		notifier: notifier,
	}
}

func (s *serviceImpl) Create(ctx context.Context, actorID string, req lead.CreateLeadRequest) (lead.LeadResponse, error) {
	if err := req.Validate(); err != nil {
		return lead.LeadResponse{}, err
	}

	entity := lead.Lead{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Source:     req.Source,
		Status:     lead.StatusNew,
		CreatedBy:  actorID,
		AssignedTo: visibility.AssigneeList(req.AssignedTo),
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return lead.LeadResponse{}, fmt.Errorf("failed to create lead: %w", err)
	}

	s.logActivity(ctx, created.ID, actorID, lead.ActivityCreated, "")
	if len(created.AssignedTo) > 0 {
		s.logActivity(ctx, created.ID, actorID, lead.ActivityAssigned, joinIDs(created.AssignedTo))
		s.notifyAssignees(ctx, created, actorID, created.AssignedTo, notification.TypeLeadAssigned,
			"New lead assigned", fmt.Sprintf("You have been assigned to lead %q", created.Name))
	}

	return toResponse(created), nil
}

func (s *serviceImpl) Get(ctx context.Context, actorID string, id string) (lead.LeadResponse, error) {
	entity, err := s.authorize(ctx, actorID, id)
	if err != nil {
		return lead.LeadResponse{}, err
	}
	return toResponse(entity), nil
}

func (s *serviceImpl) List(ctx context.Context, actorID string, filter lead.Filter) ([]lead.LeadResponse, int64, error) {
	filter.LoginOnly = false
	return s.list(ctx, actorID, visibility.ModuleLeads, filter)
}

// ListLoginQueue lists leads moved to the login queue; the login module's
// grants govern it, not the leads module's.
func (s *serviceImpl) ListLoginQueue(ctx context.Context, actorID string, filter lead.Filter) ([]lead.LeadResponse, int64, error) {
	filter.LoginOnly = true
	return s.list(ctx, actorID, visibility.ModuleLogin, filter)
}

func (s *serviceImpl) list(ctx context.Context, actorID string, module visibility.Module, filter lead.Filter) ([]lead.LeadResponse, int64, error) {
	entries, err := s.perms.PermissionsFor(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}

	visible := s.engine.BuildFilter(ctx, actorID, entries, module, nil)

	leads, total, err := s.repo.List(ctx, visible, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]lead.LeadResponse, 0, len(leads))
	for _, l := range leads {
		responses = append(responses, toResponse(l))
	}
	return responses, total, nil
}

func (s *serviceImpl) Update(ctx context.Context, actorID string, req lead.UpdateLeadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	entity, err := s.authorize(ctx, actorID, req.ID)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, req); err != nil {
		return err
	}

	if req.Status != nil && *req.Status != entity.Status {
		s.logActivity(ctx, req.ID, actorID, lead.ActivityStatusChanged,
			fmt.Sprintf("%s -> %s", entity.Status, *req.Status))
	}
	return nil
}

func (s *serviceImpl) Assign(ctx context.Context, actorID string, req lead.AssignLeadRequest) error {
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

	s.logActivity(ctx, req.ID, actorID, lead.ActivityAssigned, joinIDs(req.AssignedTo))
	s.notifyAssignees(ctx, entity, actorID, req.AssignedTo, notification.TypeLeadAssigned,
		"Lead assigned", fmt.Sprintf("You have been assigned to lead %q", entity.Name))
	return nil
}

// Transfer moves a single assignment from one user to another, keeping any
// other assignees in place.
func (s *serviceImpl) Transfer(ctx context.Context, actorID string, req lead.TransferLeadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	entity, err := s.authorize(ctx, actorID, req.ID)
	if err != nil {
		return err
	}

	if !entity.AssignedTo.Contains(req.FromUserID) {
		return lead.ErrNotAssignedToUser
	}

	assignees := make([]string, 0, len(entity.AssignedTo))
	for _, id := range entity.AssignedTo {
		if id == req.FromUserID {
			continue
		}
		assignees = append(assignees, id)
	}
	if !contains(assignees, req.ToUserID) {
		assignees = append(assignees, req.ToUserID)
	}

	if err := s.repo.SetAssignees(ctx, req.ID, assignees); err != nil {
		return err
	}

	s.logActivity(ctx, req.ID, actorID, lead.ActivityTransferred,
		fmt.Sprintf("%s -> %s", req.FromUserID, req.ToUserID))
	s.notifyAssignees(ctx, entity, actorID, []string{req.ToUserID}, notification.TypeLeadTransferred,
		"Lead transferred to you", fmt.Sprintf("Lead %q was transferred to you", entity.Name))
	return nil
}

func (s *serviceImpl) SetReporters(ctx context.Context, actorID string, req lead.SetReportersRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	entity, err := s.authorize(ctx, actorID, req.ID)
	if err != nil {
		return err
	}

	if err := s.repo.SetReporters(ctx, req.ID, req.Reporters); err != nil {
		return err
	}

	s.logActivity(ctx, req.ID, actorID, lead.ActivityReportersSet, joinIDs(req.Reporters))
	s.notifyAssignees(ctx, entity, actorID, req.Reporters, notification.TypeLeadReporterSet,
		"Added as lead reporter", fmt.Sprintf("You now receive reports for lead %q", entity.Name))
	return nil
}

func (s *serviceImpl) MoveToLoginQueue(ctx context.Context, actorID string, id string) error {
	entity, err := s.authorize(ctx, actorID, id)
	if err != nil {
		return err
	}

	if entity.IsLoginLead {
		return lead.ErrAlreadyInLoginQueue
	}

	if err := s.repo.SetLoginLead(ctx, id, true); err != nil {
		return err
	}

	s.logActivity(ctx, id, actorID, lead.ActivityMovedToLogin, "")
	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, actorID string, id string) error {
	if _, err := s.authorize(ctx, actorID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *serviceImpl) Activities(ctx context.Context, actorID string, leadID string) ([]lead.ActivityResponse, error) {
	if _, err := s.authorize(ctx, actorID, leadID); err != nil {
		return nil, err
	}

	activities, err := s.repo.ListActivities(ctx, leadID)
	if err != nil {
		return nil, err
	}

	responses := make([]lead.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		responses = append(responses, lead.ActivityResponse{
			ID:        a.ID,
			LeadID:    a.LeadID,
			ActorID:   a.ActorID,
			Action:    a.Action,
			Detail:    a.Detail,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}

// authorize loads the lead and checks the actor may see it. The lead's own
// effective module decides which grants apply, so a lead in the login queue
// is checked against login permissions.
func (s *serviceImpl) authorize(ctx context.Context, actorID string, id string) (lead.Lead, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return lead.Lead{}, lead.ErrLeadNotFound
		}
		return lead.Lead{}, err
	}

	entries, err := s.perms.PermissionsFor(ctx, actorID)
	if err != nil {
		return lead.Lead{}, err
	}

	if !s.engine.CanView(ctx, entity.VisibilityRecord(), actorID, entries, entity.Module()) {
		return lead.Lead{}, lead.ErrLeadAccessDenied
	}
	return entity, nil
}

// logActivity records a timeline entry; failures are swallowed so the
// primary write is never rolled back over bookkeeping.
func (s *serviceImpl) logActivity(ctx context.Context, leadID, actorID, action, detail string) {
	_ = s.repo.AddActivity(ctx, lead.Activity{
		LeadID:  leadID,
		ActorID: actorID,
		Action:  action,
		Detail:  detail,
	})
}

func (s *serviceImpl) notifyAssignees(ctx context.Context, entity lead.Lead, actorID string, recipients []string, typ notification.NotificationType, title, message string) {
	if s.notifier == nil {
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
			Data:        map[string]interface{}{"lead_id": entity.ID},
		})
	}
	if len(reqs) == 0 {
		return
	}
	_ = s.notifier.QueueBulkNotification(ctx, reqs)
}

func toResponse(l lead.Lead) lead.LeadResponse {
	assigned := l.AssignedTo
	if assigned == nil {
		assigned = visibility.AssigneeList{}
	}
	reporters := l.AssignReportTo
	if reporters == nil {
		reporters = []string{}
	}
	return lead.LeadResponse{
		ID:             l.ID,
		Name:           l.Name,
		Email:          l.Email,
		Phone:          l.Phone,
		Source:         l.Source,
		Status:         l.Status,
		IsLoginLead:    l.IsLoginLead,
		CreatedBy:      l.CreatedBy,
		AssignedTo:     assigned,
		AssignReportTo: reporters,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      l.UpdatedAt.Format(time.RFC3339),
	}
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ", ")
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
