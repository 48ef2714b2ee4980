package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/wenci-bit/LifePRG-sub002/internal/catalog"
)

// RewardBundle is the computed set of state deltas from one activity.
// It is ephemeral: produced and consumed within a single resolution
// cycle, never persisted on its own.
type RewardBundle struct {
	Exp                 int
	Currency            int
	CategorizedCurrency map[AttributeKey]int
	AttributeDeltas     map[AttributeKey]int
	BonusMessage        string
	IsSpecial           bool
}

// merge folds another bundle into the receiver.
func (b *RewardBundle) merge(other RewardBundle) {
	b.Exp += other.Exp
	b.Currency += other.Currency
	for k, v := range other.CategorizedCurrency {
		if b.CategorizedCurrency == nil {
			b.CategorizedCurrency = map[AttributeKey]int{}
		}
		b.CategorizedCurrency[k] += v
	}
	for k, v := range other.AttributeDeltas {
		if b.AttributeDeltas == nil {
			b.AttributeDeltas = map[AttributeKey]int{}
		}
		b.AttributeDeltas[k] += v
	}
	if other.BonusMessage != "" {
		b.BonusMessage = other.BonusMessage
	}
	b.IsSpecial = b.IsSpecial || other.IsSpecial
}

// Resolution is the full outcome of resolving one activity: the reward
// bundle plus the state updates that must be committed with it.
type Resolution struct {
	Bundle RewardBundle

	// StreakDomain and StreakAfter carry the advanced counter for the
	// activity's domain; empty domain means no streak was touched.
	StreakDomain string
	StreakAfter  StreakCounter

	QuestsCompleted int
	FocusMinutes    int
}

// Resolver converts activities into reward bundles using the static
// catalogs. Resolution is pure: it never mutates the passed state.
type Resolver struct {
	catalog *catalog.Catalog
}

func NewResolver(c *catalog.Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// Resolve computes the reward for one activity against the current
// state. The caller applies the result atomically via the service.
func (r *Resolver) Resolve(act Activity, st *ProgressState) (*Resolution, error) {
	if act == nil {
		return nil, InvalidActivityError{Reason: "nil activity"}
	}
	if err := act.Validate(); err != nil {
		return nil, err
	}

	switch a := act.(type) {
	case QuestCompletion:
		return r.resolveQuest(a, st)
	case HabitCompletion:
		return r.resolveHabit(a, st)
	case CheckIn:
		return r.resolveCheckIn(a, st)
	default:
		return nil, InvalidActivityError{Reason: fmt.Sprintf("unknown activity type %T", act)}
	}
}

func (r *Resolver) resolveQuest(q QuestCompletion, st *ProgressState) (*Resolution, error) {
	weights, ok := r.catalog.Priorities[string(q.Priority)]
	if !ok {
		return nil, InvalidActivityError{Reason: "unknown quest priority: " + string(q.Priority)}
	}

	attr := DefaultAttribute
	if t := strings.TrimSpace(strings.ToLower(q.Type)); t != "" {
		qt, ok := r.catalog.QuestTypes[t]
		if !ok {
			return nil, InvalidActivityError{Reason: "unknown quest type: " + t}
		}
		attr = ParseAttribute(qt.Attribute)
	}

	mult := ExpBonusMultiplier(st.Level)
	bundle := RewardBundle{
		Exp:      int(math.Round(float64(weights.Exp) * mult)),
		Currency: weights.Coins,
	}
	if weights.AttributeDelta > 0 {
		bundle.AttributeDeltas = map[AttributeKey]int{attr: weights.AttributeDelta}
	}

	return &Resolution{
		Bundle:          bundle,
		QuestsCompleted: 1,
		FocusMinutes:    q.FocusMinutes,
	}, nil
}

func (r *Resolver) resolveHabit(h HabitCompletion, st *ProgressState) (*Resolution, error) {
	id := strings.TrimSpace(strings.ToLower(h.HabitID))
	def, ok := r.catalog.Habits[id]
	if !ok {
		return nil, InvalidActivityError{Reason: "unknown habit: " + id}
	}

	after, err := st.Streak(id).Advance(id, h.At)
	if err != nil {
		return nil, err
	}

	mult := StreakBonusMultiplier(after.CurrentStreak)
	bundle := RewardBundle{
		Exp:      int(math.Round(float64(def.BaseExp) * mult)),
		Currency: int(math.Round(float64(def.BaseCoins) * mult)),
	}
	if a := ParseAttribute(def.Attribute); a.IsValid() {
		bundle.AttributeDeltas = map[AttributeKey]int{a: 1}
	}

	return &Resolution{
		Bundle:       bundle,
		StreakDomain: id,
		StreakAfter:  after,
	}, nil
}

func (r *Resolver) resolveCheckIn(c CheckIn, st *ProgressState) (*Resolution, error) {
	prev := st.Streak(CheckInDomain)
	if prev.SameDay(c.At) {
		return nil, AlreadyCheckedInError{Date: dayStart(c.At)}
	}

	after, err := prev.Advance(CheckInDomain, c.At)
	if err != nil {
		return nil, err
	}

	bundle := CheckInDailyReward(after.CurrentStreak)
	if bonus := MilestoneReward(after.CurrentStreak); bonus != nil {
		bundle.merge(*bonus)
	}

	return &Resolution{
		Bundle:       bundle,
		StreakDomain: CheckInDomain,
		StreakAfter:  after,
	}, nil
}
