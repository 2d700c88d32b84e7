package visibility

import "encoding/json"

// AssigneeList is the canonical decoded form of an assignment field.
// Historical rows store a single user-ID string; newer rows store a list.
// Both shapes must be accepted indefinitely — this type normalizes reads
// while writes always emit the list form.
type AssigneeList []string

func (a *AssigneeList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*a = nil
		} else {
			*a = AssigneeList{s}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*a = AssigneeList(list)
		return nil
	}

	// null or an unrecognized shape reads as unassigned.
	*a = nil
	return nil
}

func (a AssigneeList) MarshalJSON() ([]byte, error) {
	if a == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(a))
}

// Contains reports whether the list includes the user ID.
func (a AssigneeList) Contains(userID string) bool {
	for _, id := range a {
		if id == userID {
			return true
		}
	}
	return false
}

// Empty reports whether the record is wholly unassigned.
func (a AssigneeList) Empty() bool {
	return len(a) == 0
}

// Record is the ownership view of a lead, task or ticket evaluated by the
// engine. Module is the record's effective module: a lead already moved to
// the login queue carries ModuleLogin here even when the caller asked in a
// ModuleLeads context.
type Record struct {
	Module         Module
	CreatedBy      string
	AssignedTo     AssigneeList
	AssignReportTo []string
}

// User is the directory view of an account, reduced to what hierarchy
// traversal needs.
type User struct {
	ID     string
	RoleID string
}

// Role is one node of the reporting hierarchy. Roles form a forest; a nil
// ParentRoleID marks a root.
type Role struct {
	ID           string
	ParentRoleID *string
	Name         string
}
