package visibility

import "encoding/json"

// Module identifies the permission scope a request or record belongs to.
type Module string

const (
	ModuleLeads         Module = "leads"
	ModuleLogin         Module = "login"
	ModuleTasks         Module = "tasks"
	ModuleTickets       Module = "tickets"
	ModuleAttendance    Module = "attendance"
	ModuleNotifications Module = "notifications"
)

// Action tokens observed in stored permission entries.
const (
	ActionShow     = "show"
	ActionJunior   = "junior"
	ActionAll      = "all"
	ActionWildcard = "*"
)

// Actions is the action grant of a permission entry. Stored rows use two
// legacy shapes: the literal string "*" (full wildcard) and a list of named
// tokens. The two are not interchangeable — an entry whose actions are the
// list ["*"] is a module admin but never a super admin, so the decoded form
// keeps the distinction instead of normalizing it away.
type Actions struct {
	Wildcard bool
	Names    []string
}

// UnmarshalJSON accepts "*", a single token string, or a list of tokens.
// Unrecognized shapes decode to an empty grant rather than failing the row.
func (a *Actions) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == ActionWildcard {
			*a = Actions{Wildcard: true}
		} else {
			*a = Actions{Names: []string{s}}
		}
		return nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*a = Actions{Names: names}
		return nil
	}

	*a = Actions{}
	return nil
}

func (a Actions) MarshalJSON() ([]byte, error) {
	if a.Wildcard {
		return json.Marshal(ActionWildcard)
	}
	if a.Names == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(a.Names)
}

// Contains reports whether the grant names the token. The full wildcard
// does not count; callers check Wildcard separately where it applies.
func (a Actions) Contains(name string) bool {
	for _, n := range a.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Entry grants a set of actions on one module. Module "*" or "any" applies
// to every module.
type Entry struct {
	Module  string  `json:"module"`
	Actions Actions `json:"actions"`
}

// AppliesTo reports whether the entry's module matches the target module.
func (e Entry) AppliesTo(module Module) bool {
	return e.Module == string(module) || e.ModuleWildcard()
}

// ModuleWildcard reports whether the entry spans all modules.
func (e Entry) ModuleWildcard() bool {
	return e.Module == "*" || e.Module == "any"
}

// Capability is the classifier verdict for one user and one module. Each
// flag is a monotonic OR across the user's matching permission entries.
type Capability struct {
	SuperAdmin  bool
	ModuleAdmin bool
	View        bool
	Junior      bool
}

// CanList reports whether any tier grants record visibility at all. A user
// with no set flag is denied, never errored.
func (c Capability) CanList() bool {
	return c.SuperAdmin || c.ModuleAdmin || c.View || c.Junior
}
