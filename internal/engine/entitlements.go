package engine

import (
	"sort"

	"github.com/wenci-bit/LifePRG-sub002/internal/catalog"
)

// Evaluator decides which entitlements a state has earned. Every
// predicate reads ProgressState only — never another entitlement's
// unlock status — so evaluation is idempotent and order-independent.
type Evaluator struct {
	defs []catalog.Entitlement
}

func NewEvaluator(c *catalog.Catalog) *Evaluator {
	return &Evaluator{defs: c.Entitlements}
}

// Satisfied reports whether the state meets an entitlement's condition,
// ignoring whether it is already unlocked.
func (e *Evaluator) Satisfied(st *ProgressState, def catalog.Entitlement) bool {
	switch def.Condition.Type {
	case catalog.CondDefault:
		return true
	case catalog.CondLevel:
		return st.Level >= def.Condition.Value
	case catalog.CondAchievement:
		return st.Stats.TotalQuestsCompleted >= def.Condition.Value
	case catalog.CondCoins:
		// Spend-gate: affordability only. The purchase path deducts.
		return st.Currency >= def.Condition.Value
	default:
		return false
	}
}

// Evaluate returns the ids of entitlements whose condition the state
// now meets but which are not yet in the unlocked set, sorted for
// stable output. The caller merges the delta and triggers any unlock
// notifications; this never mutates state or deducts currency.
func (e *Evaluator) Evaluate(st *ProgressState) []string {
	var newly []string
	for _, def := range e.defs {
		if st.IsUnlocked(def.ID) {
			continue
		}
		if e.Satisfied(st, def) {
			newly = append(newly, def.ID)
		}
	}
	sort.Strings(newly)
	return newly
}

// Definition returns the entitlement definition for an id, if known.
func (e *Evaluator) Definition(id string) (catalog.Entitlement, bool) {
	for _, def := range e.defs {
		if def.ID == id {
			return def, true
		}
	}
	return catalog.Entitlement{}, false
}
