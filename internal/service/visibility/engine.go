package visibility

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
	"github.com/leadwise/crm-backend-go/internal/pkg/cache"
)

// subordinateTTL keeps resolved subordinate sets hot across the queries of
// a request burst without letting hierarchy edits stay invisible for long.
const subordinateTTL = 30 * time.Second

type engineImpl struct {
	resolver *Resolver
	cache    *cache.Cache
}

// NewEngine builds the visibility engine. cache may be nil; subordinate
// sets are then resolved from the directories on every call.
func NewEngine(roles visibility.RoleDirectory, users visibility.UserDirectory, c *cache.Cache) visibility.Engine {
	return &engineImpl{
		resolver: NewResolver(roles, users),
		cache:    c,
	}
}

// Classify implements visibility.Engine.
func (e *engineImpl) Classify(entries []visibility.Entry, module visibility.Module) visibility.Capability {
	return Classify(entries, module)
}

// Subordinates implements visibility.Engine.
func (e *engineImpl) Subordinates(ctx context.Context, managerID string) (map[string]struct{}, error) {
	if e.cache != nil {
		var ids []string
		if err := e.cache.Get(ctx, subordinateKey(managerID), &ids); err == nil {
			return toSet(ids), nil
		}
	}

	set, err := e.resolver.Subordinates(ctx, managerID)
	if err != nil {
		return set, err
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, subordinateKey(managerID), sortedIDs(set), subordinateTTL); err != nil {
			slog.WarnContext(ctx, "subordinate cache write failed", "user_id", managerID, "error", err)
		}
	}
	return set, nil
}

// CanView implements visibility.Engine. Precedence: super admin, then
// admin of the record's effective module, then ownership, then junior
// cascade, then deny.
func (e *engineImpl) CanView(ctx context.Context, rec visibility.Record, userID string, entries []visibility.Entry, module visibility.Module) bool {
	c := Classify(entries, module)
	if c.SuperAdmin {
		return true
	}

	// A record already moved to another sub-module is judged by that
	// module's grants: a leads admin does not see login-queue leads.
	if rec.Module != "" && rec.Module != module {
		c = Classify(entries, rec.Module)
	}
	if c.ModuleAdmin {
		return true
	}
	if !c.View && !c.Junior {
		return false
	}

	if rec.CreatedBy == userID || rec.AssignedTo.Contains(userID) {
		return true
	}
	for _, id := range rec.AssignReportTo {
		if id == userID {
			return true
		}
	}

	if !c.Junior {
		return false
	}
	if rec.AssignedTo.Empty() {
		return true
	}

	subs, _ := e.Subordinates(ctx, userID)
	if _, ok := subs[rec.CreatedBy]; ok {
		return true
	}
	for _, id := range rec.AssignedTo {
		if _, ok := subs[id]; ok {
			return true
		}
	}
	return false
}

// BuildFilter implements visibility.Engine. Assignee clauses are always
// emitted for both storage conventions (legacy scalar and list); dropping
// either silently hides records from authorized users.
func (e *engineImpl) BuildFilter(ctx context.Context, userID string, entries []visibility.Entry, module visibility.Module, extra visibility.Filter) visibility.Filter {
	c := Classify(entries, module)
	if c.SuperAdmin || c.ModuleAdmin {
		return extra
	}
	if !c.View && !c.Junior {
		return visibility.None{}
	}

	terms := []visibility.Filter{
		visibility.Eq{Field: visibility.FieldCreatedBy, Value: userID},
		visibility.Eq{Field: visibility.FieldAssignedTo, Value: userID},
		visibility.Has{Field: visibility.FieldAssignedTo, Value: userID},
		visibility.Has{Field: visibility.FieldAssignReportTo, Value: userID},
	}

	if c.Junior {
		subs, _ := e.Subordinates(ctx, userID)
		if len(subs) > 0 {
			ids := sortedIDs(subs)
			terms = append(terms,
				visibility.In{Field: visibility.FieldCreatedBy, Values: ids},
				visibility.In{Field: visibility.FieldAssignedTo, Values: ids},
				visibility.HasAny{Field: visibility.FieldAssignedTo, Values: ids},
			)
		}
		terms = append(terms, visibility.Unassigned{Field: visibility.FieldAssignedTo})
	}

	return visibility.AllOf(visibility.AnyOf(terms...), extra)
}

func subordinateKey(userID string) string {
	return "visibility:subordinates:" + userID
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
