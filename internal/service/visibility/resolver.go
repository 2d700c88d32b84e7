package visibility

import (
	"context"
	"log/slog"
	"sync"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
	"golang.org/x/sync/errgroup"
)

// maxHierarchyDepth bounds the role walk. The visited set already breaks
// cycles; the depth cap guards against pathologically deep trees.
const maxHierarchyDepth = 32

// Resolver walks the role hierarchy downward from a manager's role and
// collects every user holding one of the strictly-subordinate roles.
type Resolver struct {
	roles visibility.RoleDirectory
	users visibility.UserDirectory
}

func NewResolver(roles visibility.RoleDirectory, users visibility.UserDirectory) *Resolver {
	return &Resolver{roles: roles, users: users}
}

// Subordinates returns the user-ID set below the manager. Lookup failures
// degrade toward deny: the set resolved so far is returned, never an error
// that would fail the whole request.
func (r *Resolver) Subordinates(ctx context.Context, managerID string) (map[string]struct{}, error) {
	result := make(map[string]struct{})

	manager, err := r.roles.GetUser(ctx, managerID)
	if err != nil {
		slog.WarnContext(ctx, "subordinate resolution: manager lookup failed", "user_id", managerID, "error", err)
		return result, nil
	}
	if manager == nil || manager.RoleID == "" {
		return result, nil
	}

	subordinateRoles := r.walkChildRoles(ctx, manager.RoleID)
	if len(subordinateRoles) == 0 {
		return result, nil
	}

	// Users of sibling roles are independent; fetch them concurrently.
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, roleID := range subordinateRoles {
		g.Go(func() error {
			users, err := r.users.GetUsersByRole(gctx, roleID)
			if err != nil {
				slog.WarnContext(gctx, "subordinate resolution: users-by-role lookup failed", "role_id", roleID, "error", err)
				return nil
			}
			mu.Lock()
			for _, u := range users {
				result[u.ID] = struct{}{}
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

// walkChildRoles collects all role IDs strictly below rootRoleID by
// breadth-first traversal. The visited set terminates malformed hierarchies
// containing cycles; whatever was reached before the cycle is kept.
func (r *Resolver) walkChildRoles(ctx context.Context, rootRoleID string) []string {
	visited := map[string]struct{}{rootRoleID: {}}
	var collected []string

	frontier := []string{rootRoleID}
	for depth := 0; len(frontier) > 0 && depth < maxHierarchyDepth; depth++ {
		var next []string
		for _, roleID := range frontier {
			children, err := r.roles.GetChildRoles(ctx, roleID)
			if err != nil {
				slog.WarnContext(ctx, "subordinate resolution: child-role lookup failed", "role_id", roleID, "error", err)
				continue
			}
			for _, child := range children {
				if _, seen := visited[child.ID]; seen {
					continue
				}
				visited[child.ID] = struct{}{}
				collected = append(collected, child.ID)
				next = append(next, child.ID)
			}
		}
		frontier = next
	}

	return collected
}
