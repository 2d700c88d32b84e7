package postgresql

import (
	"fmt"
	"strings"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

// jsonbColumns are assignment fields stored as jsonb. Historical rows hold
// a scalar string, newer rows an array; the rendered SQL must match both.
var jsonbColumns = map[string]bool{
	visibility.FieldAssignedTo:     true,
	visibility.FieldAssignReportTo: true,
}

// boolColumns are filterable boolean flags reached via extra constraints.
var boolColumns = map[string]bool{
	"is_login_lead": true,
}

// filterColumns is the whitelist of columns a visibility filter may touch.
// Field names originate from engine constants and service code, never from
// request input, but the whitelist keeps that invariant enforced here.
var filterColumns = map[string]bool{
	visibility.FieldCreatedBy:      true,
	visibility.FieldAssignedTo:     true,
	visibility.FieldAssignReportTo: true,
	"is_login_lead":                true,
	"status":                       true,
	"priority":                     true,
	"lead_id":                      true,
}

// filterBuilder renders a visibility.Filter into a SQL fragment with
// positional arguments. It is also used by repositories to bind their own
// conditions so placeholder numbering stays consistent.
type filterBuilder struct {
	args []interface{}
}

func newFilterBuilder() *filterBuilder {
	return &filterBuilder{}
}

// bind registers an argument and returns its placeholder.
func (b *filterBuilder) bind(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// clause renders the filter. A nil filter is unconstrained (TRUE); an
// unknown node or column fails toward deny (FALSE), matching the engine's
// security bias.
func (b *filterBuilder) clause(f visibility.Filter) string {
	switch t := f.(type) {
	case nil:
		return "TRUE"
	case visibility.None:
		return "FALSE"
	case visibility.Eq:
		return b.eq(t)
	case visibility.In:
		return b.in(t)
	case visibility.Has:
		if !filterColumns[t.Field] {
			return "FALSE"
		}
		return fmt.Sprintf("%s ? %s", t.Field, b.bind(t.Value))
	case visibility.HasAny:
		if !filterColumns[t.Field] {
			return "FALSE"
		}
		return fmt.Sprintf("%s ?| %s::text[]", t.Field, b.bind(t.Values))
	case visibility.Unassigned:
		if !filterColumns[t.Field] {
			return "FALSE"
		}
		return fmt.Sprintf("(%s IS NULL OR %s = 'null'::jsonb OR %s = '[]'::jsonb OR %s = '\"\"'::jsonb)",
			t.Field, t.Field, t.Field, t.Field)
	case visibility.And:
		return b.join(t.Terms, " AND ")
	case visibility.Or:
		return b.join(t.Terms, " OR ")
	default:
		return "FALSE"
	}
}

func (b *filterBuilder) eq(t visibility.Eq) string {
	if !filterColumns[t.Field] {
		return "FALSE"
	}
	if jsonbColumns[t.Field] {
		// Scalar storage convention: the whole jsonb value is one ID.
		return fmt.Sprintf("%s = to_jsonb(%s::text)", t.Field, b.bind(t.Value))
	}
	if boolColumns[t.Field] {
		return fmt.Sprintf("%s = %s::boolean", t.Field, b.bind(t.Value))
	}
	return fmt.Sprintf("%s = %s", t.Field, b.bind(t.Value))
}

func (b *filterBuilder) in(t visibility.In) string {
	if !filterColumns[t.Field] || len(t.Values) == 0 {
		return "FALSE"
	}
	if jsonbColumns[t.Field] {
		// Scalar convention against a set: unwrap the jsonb string.
		return fmt.Sprintf("(jsonb_typeof(%s) = 'string' AND (%s #>> '{}') = ANY(%s::text[]))",
			t.Field, t.Field, b.bind(t.Values))
	}
	return fmt.Sprintf("%s = ANY(%s::text[])", t.Field, b.bind(t.Values))
}

func (b *filterBuilder) join(terms []visibility.Filter, sep string) string {
	if len(terms) == 0 {
		return "FALSE"
	}
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		parts = append(parts, b.clause(term))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, sep) + ")"
}
