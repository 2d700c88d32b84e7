package visibility

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func showOnly(t *testing.T, module string) []visibility.Entry {
	t.Helper()
	return entriesFromJSON(t, `[{"module":"`+module+`","actions":["show"]}]`)
}

func showAndJunior(t *testing.T, module string) []visibility.Entry {
	t.Helper()
	return entriesFromJSON(t, `[{"module":"`+module+`","actions":["show","junior"]}]`)
}

func newTestEngine(dir *fakeDirectory) visibility.Engine {
	return NewEngine(dir, dir, nil)
}

func TestEngine_DenyByDefault(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEngine(newFakeDirectory())

	rec := visibility.Record{Module: visibility.ModuleLeads, CreatedBy: "U", AssignedTo: visibility.AssigneeList{"U"}}
	assert.False(t, e.CanView(ctx, rec, "U", nil, visibility.ModuleLeads))

	f := e.BuildFilter(ctx, "U", nil, visibility.ModuleLeads, nil)
	assert.Equal(t, visibility.None{}, f)
}

func TestEngine_SuperAdminSeesAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEngine(newFakeDirectory())

	entries := entriesFromJSON(t, `[{"module":"*","actions":"*"}]`)
	rec := visibility.Record{
		Module:     visibility.ModuleLogin,
		CreatedBy:  "someone-else",
		AssignedTo: visibility.AssigneeList{"another"},
	}

	assert.True(t, e.CanView(ctx, rec, "U", entries, visibility.ModuleLeads))

	extra := visibility.Eq{Field: "status", Value: "new"}
	f := e.BuildFilter(ctx, "U", entries, visibility.ModuleLeads, extra)
	assert.Equal(t, visibility.Filter(extra), f)
}

func TestEngine_OwnershipIsSufficient(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEngine(newFakeDirectory())
	entries := showOnly(t, "leads")

	rec := visibility.Record{
		Module:         visibility.ModuleLeads,
		CreatedBy:      "U",
		AssignedTo:     visibility.AssigneeList{"other1", "other2"},
		AssignReportTo: []string{"other3"},
	}
	assert.True(t, e.CanView(ctx, rec, "U", entries, visibility.ModuleLeads))

	// Explicit reporter grant works the same way.
	rec = visibility.Record{
		Module:         visibility.ModuleLeads,
		CreatedBy:      "other",
		AssignReportTo: []string{"U"},
	}
	assert.True(t, e.CanView(ctx, rec, "U", entries, visibility.ModuleLeads))
}

func TestEngine_AssigneeDualRepresentation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEngine(newFakeDirectory())
	entries := showOnly(t, "leads")

	// Legacy rows store a scalar assignee, newer rows a list. Both decode
	// into the same view and both are visible to the assignee.
	var scalar, list visibility.AssigneeList
	require.NoError(t, json.Unmarshal([]byte(`"U1"`), &scalar))
	require.NoError(t, json.Unmarshal([]byte(`["U1"]`), &list))

	for _, assigned := range []visibility.AssigneeList{scalar, list} {
		rec := visibility.Record{Module: visibility.ModuleLeads, CreatedBy: "other", AssignedTo: assigned}
		assert.True(t, e.CanView(ctx, rec, "U1", entries, visibility.ModuleLeads))
	}
}

func TestEngine_BuildFilter_BasicViewShape(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEngine(newFakeDirectory())

	f := e.BuildFilter(ctx, "U", showOnly(t, "leads"), visibility.ModuleLeads, nil)

	or, ok := f.(visibility.Or)
	require.True(t, ok, "expected an OR of ownership terms, got %T", f)
	assert.Equal(t, []visibility.Filter{
		visibility.Eq{Field: visibility.FieldCreatedBy, Value: "U"},
		visibility.Eq{Field: visibility.FieldAssignedTo, Value: "U"},
		visibility.Has{Field: visibility.FieldAssignedTo, Value: "U"},
		visibility.Has{Field: visibility.FieldAssignReportTo, Value: "U"},
	}, or.Terms)
}

func TestEngine_BuildFilter_JuniorCascadeShape(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := newFakeDirectory()
	dir.addRole("R1", "R0")
	dir.addUser("M", "R0")
	dir.addUser("A", "R1")
	e := newTestEngine(dir)

	extra := visibility.Eq{Field: "status", Value: "open"}
	f := e.BuildFilter(ctx, "M", showAndJunior(t, "leads"), visibility.ModuleLeads, extra)

	and, ok := f.(visibility.And)
	require.True(t, ok, "expected OR-clause AND extra, got %T", f)
	require.Len(t, and.Terms, 2)

	or, ok := and.Terms[0].(visibility.Or)
	require.True(t, ok)
	assert.Equal(t, []visibility.Filter{
		visibility.Eq{Field: visibility.FieldCreatedBy, Value: "M"},
		visibility.Eq{Field: visibility.FieldAssignedTo, Value: "M"},
		visibility.Has{Field: visibility.FieldAssignedTo, Value: "M"},
		visibility.Has{Field: visibility.FieldAssignReportTo, Value: "M"},
		visibility.In{Field: visibility.FieldCreatedBy, Values: []string{"A"}},
		visibility.In{Field: visibility.FieldAssignedTo, Values: []string{"A"}},
		visibility.HasAny{Field: visibility.FieldAssignedTo, Values: []string{"A"}},
		visibility.Unassigned{Field: visibility.FieldAssignedTo},
	}, or.Terms)

	assert.Equal(t, visibility.Filter(extra), and.Terms[1])
}

func TestEngine_UnassignedVisibleUnderCascadeOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEngine(newFakeDirectory())

	rec := visibility.Record{Module: visibility.ModuleLeads, CreatedBy: "creator"}

	assert.False(t, e.CanView(ctx, rec, "U", showOnly(t, "leads"), visibility.ModuleLeads))
	assert.True(t, e.CanView(ctx, rec, "U", showAndJunior(t, "leads"), visibility.ModuleLeads))
}

// Scenario A: direct assignee with basic view.
func TestEngine_AssignedLeadVisible(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEngine(newFakeDirectory())

	rec := visibility.Record{
		Module:     visibility.ModuleLeads,
		CreatedBy:  "U2",
		AssignedTo: visibility.AssigneeList{"U"},
	}
	assert.True(t, e.CanView(ctx, rec, "U", showOnly(t, "leads"), visibility.ModuleLeads))
}

// Scenario B: unrelated unassigned lead is hidden from basic view.
func TestEngine_UnrelatedLeadHidden(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEngine(newFakeDirectory())

	rec := visibility.Record{Module: visibility.ModuleLeads, CreatedBy: "U3"}
	assert.False(t, e.CanView(ctx, rec, "U", showOnly(t, "leads"), visibility.ModuleLeads))
}

// Scenario C: manager sees a subordinate's unassigned lead via cascade.
func TestEngine_ManagerSeesSubordinateLead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := newFakeDirectory()
	dir.addRole("agent-role", "manager-role")
	dir.addUser("M", "manager-role")
	dir.addUser("A", "agent-role")
	e := newTestEngine(dir)

	entries := showAndJunior(t, "leads")

	// Unassigned record created by the subordinate.
	rec := visibility.Record{Module: visibility.ModuleLeads, CreatedBy: "A"}
	assert.True(t, e.CanView(ctx, rec, "M", entries, visibility.ModuleLeads))

	// Assigned to the subordinate: reachable only through the cascade.
	rec = visibility.Record{Module: visibility.ModuleLeads, CreatedBy: "X", AssignedTo: visibility.AssigneeList{"A"}}
	assert.True(t, e.CanView(ctx, rec, "M", entries, visibility.ModuleLeads))

	// A peer outside the subtree stays hidden.
	rec = visibility.Record{Module: visibility.ModuleLeads, CreatedBy: "X", AssignedTo: visibility.AssigneeList{"X"}}
	assert.False(t, e.CanView(ctx, rec, "M", entries, visibility.ModuleLeads))
}

// Scenario D: a leads module admin does not see login-queue records.
func TestEngine_ModuleAdminScopedToExactModule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEngine(newFakeDirectory())

	leadsAdmin := entriesFromJSON(t, `[{"module":"leads","actions":"*"}]`)
	loginLead := visibility.Record{
		Module:     visibility.ModuleLogin,
		CreatedBy:  "other",
		AssignedTo: visibility.AssigneeList{"other"},
	}

	assert.False(t, e.CanView(ctx, loginLead, "U", leadsAdmin, visibility.ModuleLeads))

	loginAdmin := entriesFromJSON(t, `[{"module":"login","actions":"*"}]`)
	assert.True(t, e.CanView(ctx, loginLead, "U", loginAdmin, visibility.ModuleLeads))

	superAdmin := entriesFromJSON(t, `[{"module":"*","actions":"*"}]`)
	assert.True(t, e.CanView(ctx, loginLead, "U", superAdmin, visibility.ModuleLeads))
}
