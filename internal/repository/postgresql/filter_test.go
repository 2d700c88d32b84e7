package postgresql

import (
	"testing"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
	"github.com/stretchr/testify/assert"
)

func TestFilterBuilder_Sentinels(t *testing.T) {
	t.Parallel()

	b := newFilterBuilder()
	assert.Equal(t, "TRUE", b.clause(nil))
	assert.Equal(t, "FALSE", b.clause(visibility.None{}))
	assert.Empty(t, b.args)
}

func TestFilterBuilder_OwnershipClause(t *testing.T) {
	t.Parallel()

	b := newFilterBuilder()
	f := visibility.Or{Terms: []visibility.Filter{
		visibility.Eq{Field: visibility.FieldCreatedBy, Value: "U"},
		visibility.Eq{Field: visibility.FieldAssignedTo, Value: "U"},
		visibility.Has{Field: visibility.FieldAssignedTo, Value: "U"},
		visibility.Has{Field: visibility.FieldAssignReportTo, Value: "U"},
	}}

	clause := b.clause(f)

	assert.Equal(t,
		`(created_by = $1 OR assigned_to = to_jsonb($2::text) OR assigned_to ? $3 OR assign_report_to ? $4)`,
		clause)
	assert.Equal(t, []interface{}{"U", "U", "U", "U"}, b.args)
}

func TestFilterBuilder_CascadeClause(t *testing.T) {
	t.Parallel()

	b := newFilterBuilder()
	ids := []string{"A", "B"}
	f := visibility.Or{Terms: []visibility.Filter{
		visibility.In{Field: visibility.FieldCreatedBy, Values: ids},
		visibility.In{Field: visibility.FieldAssignedTo, Values: ids},
		visibility.HasAny{Field: visibility.FieldAssignedTo, Values: ids},
		visibility.Unassigned{Field: visibility.FieldAssignedTo},
	}}

	clause := b.clause(f)

	assert.Contains(t, clause, "created_by = ANY($1::text[])")
	assert.Contains(t, clause, "(jsonb_typeof(assigned_to) = 'string' AND (assigned_to #>> '{}') = ANY($2::text[]))")
	assert.Contains(t, clause, "assigned_to ?| $3::text[]")
	assert.Contains(t, clause, "(assigned_to IS NULL OR assigned_to = 'null'::jsonb OR assigned_to = '[]'::jsonb OR assigned_to = '\"\"'::jsonb)")
	assert.Len(t, b.args, 3)
}

func TestFilterBuilder_AndCombinesExtraConstraint(t *testing.T) {
	t.Parallel()

	b := newFilterBuilder()
	f := visibility.And{Terms: []visibility.Filter{
		visibility.Eq{Field: visibility.FieldCreatedBy, Value: "U"},
		visibility.Eq{Field: "is_login_lead", Value: "true"},
	}}

	assert.Equal(t, `(created_by = $1 AND is_login_lead = $2::boolean)`, b.clause(f))
}

func TestFilterBuilder_UnknownColumnFailsClosed(t *testing.T) {
	t.Parallel()

	b := newFilterBuilder()
	assert.Equal(t, "FALSE", b.clause(visibility.Eq{Field: "password_hash", Value: "x"}))
	assert.Equal(t, "FALSE", b.clause(visibility.Has{Field: "email; DROP TABLE leads", Value: "x"}))
	assert.Equal(t, "FALSE", b.clause(visibility.In{Field: visibility.FieldCreatedBy, Values: nil}))
	assert.Empty(t, b.args)
}

func TestFilterBuilder_BindContinuesNumbering(t *testing.T) {
	t.Parallel()

	b := newFilterBuilder()
	clause := b.clause(visibility.Eq{Field: visibility.FieldCreatedBy, Value: "U"})
	assert.Equal(t, "created_by = $1", clause)

	// Repository-side conditions keep numbering after the filter's args.
	assert.Equal(t, "$2", b.bind("new"))
	assert.Equal(t, []interface{}{"U", "new"}, b.args)
}
