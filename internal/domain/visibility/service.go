package visibility

import "context"

// RoleDirectory resolves users to roles and roles to their direct children.
type RoleDirectory interface {
	GetUser(ctx context.Context, userID string) (*User, error)
	GetChildRoles(ctx context.Context, roleID string) ([]Role, error)
}

// UserDirectory maps roles to the concrete users holding them.
type UserDirectory interface {
	GetUsersByRole(ctx context.Context, roleID string) ([]User, error)
}

// Engine computes record visibility for a user from their permission
// entries, the reporting hierarchy and record ownership fields. It is
// stateless and safe for concurrent use; directory lookups are its only
// I/O. It never writes records, users or roles.
type Engine interface {
	// Classify folds the user's permission entries into capability flags
	// for the target module.
	Classify(entries []Entry, module Module) Capability

	// Subordinates returns the IDs of all users transitively below the
	// manager's role. A missing user or role yields an empty set; a failed
	// directory lookup degrades to the partial set resolved so far.
	Subordinates(ctx context.Context, managerID string) (map[string]struct{}, error)

	// CanView decides visibility of a single record.
	CanView(ctx context.Context, rec Record, userID string, entries []Entry, module Module) bool

	// BuildFilter returns the predicate describing every record the user
	// may see in the module, narrowed by extra (nil extra means no further
	// constraint). A user with no visibility gets None.
	BuildFilter(ctx context.Context, userID string, entries []Entry, module Module, extra Filter) Filter
}
