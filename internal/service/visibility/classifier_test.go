package visibility

import (
	"encoding/json"
	"testing"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entriesFromJSON(t *testing.T, raw string) []visibility.Entry {
	t.Helper()
	var entries []visibility.Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	return entries
}

func TestClassify_EmptyPermissions(t *testing.T) {
	t.Parallel()

	c := Classify(nil, visibility.ModuleLeads)

	assert.False(t, c.SuperAdmin)
	assert.False(t, c.ModuleAdmin)
	assert.False(t, c.View)
	assert.False(t, c.Junior)
	assert.False(t, c.CanList())
}

func TestClassify_SuperAdminRequiresExactWildcard(t *testing.T) {
	t.Parallel()

	// Full wildcard on both axes is the only super-admin shape.
	c := Classify(entriesFromJSON(t, `[{"module":"*","actions":"*"}]`), visibility.ModuleTasks)
	assert.True(t, c.SuperAdmin)
	assert.True(t, c.ModuleAdmin)
	assert.True(t, c.View)
	assert.True(t, c.Junior)

	// "any" is an accepted wildcard module spelling.
	c = Classify(entriesFromJSON(t, `[{"module":"any","actions":"*"}]`), visibility.ModuleLeads)
	assert.True(t, c.SuperAdmin)

	// A list containing "*" is module admin, never super admin.
	c = Classify(entriesFromJSON(t, `[{"module":"*","actions":["*"]}]`), visibility.ModuleLeads)
	assert.False(t, c.SuperAdmin)
	assert.True(t, c.ModuleAdmin)

	// Scoped module with wildcard actions is not super admin either.
	c = Classify(entriesFromJSON(t, `[{"module":"leads","actions":"*"}]`), visibility.ModuleLeads)
	assert.False(t, c.SuperAdmin)
	assert.True(t, c.ModuleAdmin)
}

func TestClassify_ModuleAdminShapes(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		`[{"module":"leads","actions":"*"}]`,
		`[{"module":"leads","actions":"all"}]`,
		`[{"module":"leads","actions":["all"]}]`,
		`[{"module":"leads","actions":["show","*"]}]`,
	} {
		c := Classify(entriesFromJSON(t, raw), visibility.ModuleLeads)
		assert.True(t, c.ModuleAdmin, "expected module admin for %s", raw)
	}
}

func TestClassify_ModuleScoping(t *testing.T) {
	t.Parallel()

	entries := entriesFromJSON(t, `[{"module":"leads","actions":["show","junior"]}]`)

	c := Classify(entries, visibility.ModuleLeads)
	assert.True(t, c.View)
	assert.True(t, c.Junior)
	assert.False(t, c.ModuleAdmin)

	// The grant does not leak into other modules.
	c = Classify(entries, visibility.ModuleTasks)
	assert.False(t, c.CanList())

	// Module admin for "leads" does not reach the login sub-module.
	c = Classify(entriesFromJSON(t, `[{"module":"leads","actions":"*"}]`), visibility.ModuleLogin)
	assert.False(t, c.CanList())
}

func TestClassify_MonotonicAcrossEntries(t *testing.T) {
	t.Parallel()

	entries := entriesFromJSON(t, `[
		{"module":"leads","actions":["show"]},
		{"module":"tasks","actions":["junior"]},
		{"module":"leads","actions":[]}
	]`)

	c := Classify(entries, visibility.ModuleLeads)
	assert.True(t, c.View)
	assert.False(t, c.Junior)

	c = Classify(entries, visibility.ModuleTasks)
	assert.True(t, c.Junior)
	assert.False(t, c.View)
}

func TestClassify_MalformedEntriesDoNotContribute(t *testing.T) {
	t.Parallel()

	entries := entriesFromJSON(t, `[
		{"module":"leads","actions":{"weird":true}},
		{"module":"leads","actions":42}
	]`)

	c := Classify(entries, visibility.ModuleLeads)
	assert.False(t, c.CanList())
}
