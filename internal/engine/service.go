package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wenci-bit/LifePRG-sub002/internal/catalog"
)

// Store is the persistence collaborator. Saves are best-effort and
// eventually consistent: the engine's in-memory state stays
// authoritative and a failed save never rolls back applied progress.
type Store interface {
	// LoadProgress returns (nil, nil) when the user has no snapshot yet.
	LoadProgress(ctx context.Context, userID string) (*ProgressState, error)
	// SaveProgress persists the state together with one activity log entry.
	SaveProgress(ctx context.Context, userID string, st *ProgressState, rec ActivityRecord) error
}

// ActivityRecord is one row of the activity log.
type ActivityRecord struct {
	ID     string
	UserID string
	Kind   string
	Exp    int
	Coins  int
	At     time.Time
}

// SubmitResult is the outcome of one activity submission.
type SubmitResult struct {
	Bundle        RewardBundle
	LevelUps      []LevelUp
	LeveledUp     bool
	NewLevel      int
	NewlyUnlocked []string

	// SaveErr carries a persistence failure. Local state is already
	// applied and authoritative; callers may warn and retry later.
	SaveErr error
}

// Service drives the resolve -> apply -> level-up -> evaluate sequence.
// Mutations for one user are serialized behind a per-user lock because
// the level-up loop and streak idempotence checks are not safe under
// interleaved partial application.
type Service struct {
	store     Store
	catalog   *catalog.Catalog
	resolver  *Resolver
	evaluator *Evaluator

	mu    sync.Mutex
	users map[string]*userEntry
}

type userEntry struct {
	mu    sync.Mutex
	state *ProgressState
}

func NewService(store Store, c *catalog.Catalog) *Service {
	return &Service{
		store:     store,
		catalog:   c,
		resolver:  NewResolver(c),
		evaluator: NewEvaluator(c),
		users:     map[string]*userEntry{},
	}
}

func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// entry returns the locked-state holder for a user, loading the
// snapshot on first touch.
func (s *Service) entry(ctx context.Context, userID string) (*userEntry, error) {
	s.mu.Lock()
	u, ok := s.users[userID]
	if !ok {
		u = &userEntry{}
		s.users[userID] = u
	}
	s.mu.Unlock()

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state == nil {
		st, err := s.store.LoadProgress(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load progress: %w", err)
		}
		if st == nil {
			st = NewProgressState()
		}
		st.Normalize()
		u.state = st
	}
	return u, nil
}

// SubmitActivity validates, resolves and applies one activity. All
// bundle fields apply together; a rejected activity leaves the state
// untouched.
func (s *Service) SubmitActivity(ctx context.Context, userID string, act Activity) (*SubmitResult, error) {
	u, err := s.entry(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	st := u.state

	res, err := s.resolver.Resolve(act, st)
	if err != nil {
		return nil, err
	}

	ups := s.apply(st, res)

	var newly []string
	for _, id := range s.evaluator.Evaluate(st) {
		def, ok := s.evaluator.Definition(id)
		if !ok {
			continue
		}
		// Coin-gated entitlements unlock through Purchase, which pairs
		// the unlock with the deduction.
		if def.Condition.Type == catalog.CondCoins {
			continue
		}
		st.Unlocked[id] = true
		newly = append(newly, id)
	}

	out := &SubmitResult{
		Bundle:        res.Bundle,
		LevelUps:      ups,
		LeveledUp:     len(ups) > 0,
		NewLevel:      st.Level,
		NewlyUnlocked: newly,
	}

	out.SaveErr = s.persist(ctx, userID, st, ActivityRecord{
		Kind:  act.Kind(),
		Exp:   res.Bundle.Exp,
		Coins: res.Bundle.Currency,
		At:    time.Now().UTC(),
	})
	return out, nil
}

// apply is the only mutator of ProgressState: streak counter, exp (with
// the level-up loop), currency, categorized wallet, clamped attribute
// deltas and stats counters land together.
func (s *Service) apply(st *ProgressState, res *Resolution) []LevelUp {
	if res.StreakDomain != "" {
		st.Streaks[res.StreakDomain] = res.StreakAfter
	}

	ups := applyExp(s.catalog, st, res.Bundle.Exp)

	st.Currency += res.Bundle.Currency
	for k, v := range res.Bundle.CategorizedCurrency {
		st.Wallet[k] += v
	}
	for k, v := range res.Bundle.AttributeDeltas {
		st.addAttribute(k, v)
	}
	st.Stats.TotalQuestsCompleted += res.QuestsCompleted
	st.Stats.TotalFocusTime += res.FocusMinutes

	return ups
}

func (s *Service) persist(ctx context.Context, userID string, st *ProgressState, rec ActivityRecord) error {
	rec.ID = uuid.NewString()
	rec.UserID = userID
	if err := s.store.SaveProgress(ctx, userID, st, rec); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// PurchaseResult reports a completed coin-gated unlock.
type PurchaseResult struct {
	ID      string
	Spent   int
	SaveErr error
}

// Purchase unlocks a coin-gated entitlement, deducting its price. The
// evaluator itself never deducts; this is the paired spend.
func (s *Service) Purchase(ctx context.Context, userID, entitlementID string) (*PurchaseResult, error) {
	u, err := s.entry(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	st := u.state

	def, ok := s.evaluator.Definition(entitlementID)
	if !ok {
		return nil, fmt.Errorf("unknown entitlement: %s", entitlementID)
	}
	if def.Condition.Type != catalog.CondCoins {
		return nil, fmt.Errorf("entitlement %s is not purchasable", entitlementID)
	}
	if st.IsUnlocked(entitlementID) {
		return nil, fmt.Errorf("entitlement %s is already unlocked", entitlementID)
	}
	if st.Currency < def.Condition.Value {
		return nil, fmt.Errorf("not enough coins for %s: need %d, have %d", entitlementID, def.Condition.Value, st.Currency)
	}

	st.Currency -= def.Condition.Value
	st.Unlocked[entitlementID] = true

	out := &PurchaseResult{ID: entitlementID, Spent: def.Condition.Value}
	out.SaveErr = s.persist(ctx, userID, st, ActivityRecord{
		Kind:  "purchase",
		Coins: -def.Condition.Value,
		At:    time.Now().UTC(),
	})
	return out, nil
}

// Progress returns a read-only snapshot of the user's state.
func (s *Service) Progress(ctx context.Context, userID string) (*ProgressState, error) {
	u, err := s.entry(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state.Clone(), nil
}
