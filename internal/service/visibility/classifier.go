package visibility

import (
	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
)

// Classify folds a permission-entry list into capability flags for the
// target module. Flags only ever turn on: entry order carries no meaning.
func Classify(entries []visibility.Entry, module visibility.Module) visibility.Capability {
	var c visibility.Capability

	for _, e := range entries {
		// Super admin requires the full wildcard on both axes. A scoped
		// entry whose actions are the list ["*"] is a module admin only.
		if e.ModuleWildcard() && e.Actions.Wildcard {
			c.SuperAdmin = true
		}

		if !e.AppliesTo(module) {
			continue
		}

		admin := e.Actions.Wildcard ||
			e.Actions.Contains(visibility.ActionWildcard) ||
			e.Actions.Contains(visibility.ActionAll)
		if admin {
			c.ModuleAdmin = true
		}
		if e.Actions.Wildcard || e.Actions.Contains(visibility.ActionShow) {
			c.View = true
		}
		if e.Actions.Wildcard || e.Actions.Contains(visibility.ActionJunior) {
			c.Junior = true
		}
	}

	return c
}
