package visibility

// Filter is a composable predicate over record ownership fields. The engine
// only builds filter trees; repositories translate them into store queries.
// A nil Filter means "no restriction".
type Filter interface {
	isFilter()
}

// None matches no records. It is the explicit deny sentinel returned when a
// user has no visibility into a module.
type None struct{}

// Eq matches records whose field equals value. Assignee clauses use it for
// the legacy scalar storage convention.
type Eq struct {
	Field string
	Value string
}

// In matches records whose scalar field is any of the given values.
type In struct {
	Field  string
	Values []string
}

// Has matches records whose array-valued field contains value.
type Has struct {
	Field string
	Value string
}

// HasAny matches records whose array-valued field intersects values.
type HasAny struct {
	Field  string
	Values []string
}

// Unassigned matches records whose field is missing, null or empty.
type Unassigned struct {
	Field string
}

// And matches records satisfying every term.
type And struct {
	Terms []Filter
}

// Or matches records satisfying at least one term.
type Or struct {
	Terms []Filter
}

func (None) isFilter()       {}
func (Eq) isFilter()         {}
func (In) isFilter()         {}
func (Has) isFilter()        {}
func (HasAny) isFilter()     {}
func (Unassigned) isFilter() {}
func (And) isFilter()        {}
func (Or) isFilter()         {}

// Ownership fields shared by leads, tasks and tickets.
const (
	FieldCreatedBy      = "created_by"
	FieldAssignedTo     = "assigned_to"
	FieldAssignReportTo = "assign_report_to"
)

// AllOf combines non-nil filters with AND. Nil terms are unconstrained and
// dropped; zero remaining terms yield nil (no restriction).
func AllOf(terms ...Filter) Filter {
	kept := make([]Filter, 0, len(terms))
	for _, t := range terms {
		if t != nil {
			kept = append(kept, t)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return And{Terms: kept}
	}
}

// AnyOf combines filters with OR. Zero terms match nothing.
func AnyOf(terms ...Filter) Filter {
	if len(terms) == 0 {
		return None{}
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return Or{Terms: terms}
}
