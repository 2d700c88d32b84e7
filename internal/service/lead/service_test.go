package lead

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/lead"
	"github.com/leadwise/crm-backend-go/internal/domain/notification"
	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	leads map[string]lead.Lead

	setAssignees []string
	activities   []lead.Activity
	listModule   visibility.Filter
	listFilter   lead.Filter
}

func newFakeRepo(leads ...lead.Lead) *fakeRepo {
	r := &fakeRepo{leads: make(map[string]lead.Lead)}
	for _, l := range leads {
		r.leads[l.ID] = l
	}
	return r
}

func (r *fakeRepo) Create(ctx context.Context, newLead lead.Lead) (lead.Lead, error) {
	newLead.ID = "generated"
	r.leads[newLead.ID] = newLead
	return newLead, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (lead.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return lead.Lead{}, pgx.ErrNoRows
	}
	return l, nil
}

func (r *fakeRepo) List(ctx context.Context, visible visibility.Filter, filter lead.Filter) ([]lead.Lead, int64, error) {
	r.listModule = visible
	r.listFilter = filter
	return nil, 0, nil
}

func (r *fakeRepo) Update(ctx context.Context, req lead.UpdateLeadRequest) error { return nil }

func (r *fakeRepo) SetAssignees(ctx context.Context, id string, assignees []string) error {
	r.setAssignees = assignees
	return nil
}

func (r *fakeRepo) SetReporters(ctx context.Context, id string, reporters []string) error {
	return nil
}

func (r *fakeRepo) SetLoginLead(ctx context.Context, id string, isLogin bool) error {
	l := r.leads[id]
	l.IsLoginLead = isLogin
	r.leads[id] = l
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error { return nil }

func (r *fakeRepo) AddActivity(ctx context.Context, activity lead.Activity) error {
	r.activities = append(r.activities, activity)
	return nil
}

func (r *fakeRepo) ListActivities(ctx context.Context, leadID string) ([]lead.Activity, error) {
	return nil, nil
}

// fakeEngine grants or denies everything and records the module each call
// was made against.
type fakeEngine struct {
	allow       bool
	viewModules []visibility.Module
	buildModule visibility.Module
}

func (e *fakeEngine) Classify(entries []visibility.Entry, module visibility.Module) visibility.Capability {
	return visibility.Capability{}
}

func (e *fakeEngine) Subordinates(ctx context.Context, managerID string) (map[string]struct{}, error) {
	return nil, nil
}

func (e *fakeEngine) CanView(ctx context.Context, rec visibility.Record, userID string, entries []visibility.Entry, module visibility.Module) bool {
	e.viewModules = append(e.viewModules, module)
	return e.allow
}

func (e *fakeEngine) BuildFilter(ctx context.Context, userID string, entries []visibility.Entry, module visibility.Module, extra visibility.Filter) visibility.Filter {
	e.buildModule = module
	return nil
}

type fakePerms struct{}

func (fakePerms) PermissionsFor(ctx context.Context, userID string) ([]visibility.Entry, error) {
	return nil, nil
}

type fakeNotifier struct {
	notification.Service
	queued []notification.CreateNotificationRequest
}

func (n *fakeNotifier) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	n.queued = append(n.queued, reqs...)
	return nil
}

func newTestService(repo *fakeRepo, engine *fakeEngine, notifier *fakeNotifier) lead.Service {
	var n notification.Service
	if notifier != nil {
		n = notifier
	}
	return NewService(repo, engine, fakePerms{}, n)
}

func TestService_GetDeniedWithoutVisibility(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo(lead.Lead{ID: "L1", Name: "Acme", CreatedBy: "other", Status: lead.StatusNew})
	svc := newTestService(repo, &fakeEngine{allow: false}, nil)

	_, err := svc.Get(ctx, "U", "L1")
	assert.ErrorIs(t, err, lead.ErrLeadAccessDenied)
}

func TestService_GetUnknownLead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestService(newFakeRepo(), &fakeEngine{allow: true}, nil)

	_, err := svc.Get(ctx, "U", "missing")
	assert.ErrorIs(t, err, lead.ErrLeadNotFound)
}

// A lead in the login queue is checked against login grants, not leads
// grants, even when reached through the regular lead endpoints.
func TestService_AuthorizeUsesEffectiveModule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo(lead.Lead{ID: "L1", Name: "Acme", CreatedBy: "U", Status: lead.StatusNew, IsLoginLead: true})
	engine := &fakeEngine{allow: true}
	svc := newTestService(repo, engine, nil)

	_, err := svc.Get(ctx, "U", "L1")
	require.NoError(t, err)
	require.Len(t, engine.viewModules, 1)
	assert.Equal(t, visibility.ModuleLogin, engine.viewModules[0])
}

func TestService_ListLoginQueueUsesLoginModule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo()
	engine := &fakeEngine{allow: true}
	svc := newTestService(repo, engine, nil)

	_, _, err := svc.ListLoginQueue(ctx, "U", lead.Filter{})
	require.NoError(t, err)
	assert.Equal(t, visibility.ModuleLogin, engine.buildModule)
	assert.True(t, repo.listFilter.LoginOnly)

	_, _, err = svc.List(ctx, "U", lead.Filter{LoginOnly: true})
	require.NoError(t, err)
	assert.Equal(t, visibility.ModuleLeads, engine.buildModule)
	assert.False(t, repo.listFilter.LoginOnly, "regular listing must never surface login-queue leads")
}

func TestService_TransferReplacesSingleAssignee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo(lead.Lead{
		ID:         "L1",
		Name:       "Acme",
		CreatedBy:  "boss",
		Status:     lead.StatusNew,
		AssignedTo: visibility.AssigneeList{"A", "B"},
	})
	notifier := &fakeNotifier{}
	svc := newTestService(repo, &fakeEngine{allow: true}, notifier)

	err := svc.Transfer(ctx, "boss", lead.TransferLeadRequest{ID: "L1", FromUserID: "A", ToUserID: "C"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, repo.setAssignees)

	require.Len(t, repo.activities, 1)
	assert.Equal(t, lead.ActivityTransferred, repo.activities[0].Action)
	assert.Equal(t, "A -> C", repo.activities[0].Detail)

	require.Len(t, notifier.queued, 1)
	assert.Equal(t, "C", notifier.queued[0].RecipientID)
	assert.Equal(t, notification.TypeLeadTransferred, notifier.queued[0].Type)
}

func TestService_TransferFromUnassignedUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo(lead.Lead{
		ID:         "L1",
		Name:       "Acme",
		CreatedBy:  "boss",
		Status:     lead.StatusNew,
		AssignedTo: visibility.AssigneeList{"B"},
	})
	svc := newTestService(repo, &fakeEngine{allow: true}, nil)

	err := svc.Transfer(ctx, "boss", lead.TransferLeadRequest{ID: "L1", FromUserID: "A", ToUserID: "C"})
	assert.ErrorIs(t, err, lead.ErrNotAssignedToUser)
	assert.Nil(t, repo.setAssignees)
}

func TestService_MoveToLoginQueueOnlyOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo(lead.Lead{ID: "L1", Name: "Acme", CreatedBy: "U", Status: lead.StatusQualified})
	svc := newTestService(repo, &fakeEngine{allow: true}, nil)

	require.NoError(t, svc.MoveToLoginQueue(ctx, "U", "L1"))
	assert.True(t, repo.leads["L1"].IsLoginLead)

	err := svc.MoveToLoginQueue(ctx, "U", "L1")
	assert.ErrorIs(t, err, lead.ErrAlreadyInLoginQueue)
}

func TestService_CreateNotifiesAssigneesExceptActor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, &fakeEngine{allow: true}, notifier)

	resp, err := svc.Create(ctx, "U", lead.CreateLeadRequest{
		Name:       "Acme",
		AssignedTo: []string{"U", "V"},
	})
	require.NoError(t, err)
	assert.Equal(t, lead.StatusNew, resp.Status)

	require.Len(t, notifier.queued, 1)
	assert.Equal(t, "V", notifier.queued[0].RecipientID)
}

func TestService_CreateRequiresName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestService(newFakeRepo(), &fakeEngine{allow: true}, nil)

	_, err := svc.Create(ctx, "U", lead.CreateLeadRequest{Name: "  "})
	assert.Error(t, err)
}
