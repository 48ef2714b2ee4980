package engine_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wenci-bit/LifePRG-sub002/internal/catalog"
	"github.com/wenci-bit/LifePRG-sub002/internal/engine"
	"github.com/wenci-bit/LifePRG-sub002/internal/storage"
)

func newTestStore(t *testing.T) *storage.ProgressStore {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return storage.NewProgressStore(db)
}

func newTestService(t *testing.T) *engine.Service {
	t.Helper()
	return engine.NewService(newTestStore(t), catalog.Default())
}

func at(n int) time.Time {
	return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, n-1)
}

func TestSubmitQuestAppliesBundle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.SubmitActivity(ctx, storage.MainUserKey, engine.QuestCompletion{
		Title:        "Finish chapter 3",
		Type:         "study",
		Priority:     engine.PriorityHigh,
		FocusMinutes: 30,
		At:           at(1),
	})
	require.NoError(t, err)
	require.NoError(t, res.SaveErr)

	st, err := svc.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)

	assert.Equal(t, 35, st.CurrentExp)
	assert.Equal(t, 18, st.Currency)
	assert.Equal(t, 2, st.Attributes[engine.AttrINT])
	assert.Equal(t, 1, st.Stats.TotalQuestsCompleted)
	assert.Equal(t, 30, st.Stats.TotalFocusTime)
	assert.Contains(t, res.NewlyUnlocked, "theme_classic")
	assert.Contains(t, res.NewlyUnlocked, "badge_first_quest")
}

func TestSubmitCheckInTwiceSameDay(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SubmitActivity(ctx, storage.MainUserKey, engine.CheckIn{At: at(1)})
	require.NoError(t, err)

	before, err := svc.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)

	_, err = svc.SubmitActivity(ctx, storage.MainUserKey, engine.CheckIn{At: at(1).Add(2 * time.Hour)})
	var already engine.AlreadyCheckedInError
	require.ErrorAs(t, err, &already)

	after, err := svc.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)
	assert.Equal(t, before.CurrentExp, after.CurrentExp, "rejected check-in must not double-apply rewards")
	assert.Equal(t, before.Currency, after.Currency)
	assert.Equal(t, before.Streak(engine.CheckInDomain), after.Streak(engine.CheckInDomain))
}

func TestSubmitCheckInStreakAcrossDays(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for d := 1; d <= 3; d++ {
		_, err := svc.SubmitActivity(ctx, storage.MainUserKey, engine.CheckIn{At: at(d)})
		require.NoError(t, err)
	}

	st, err := svc.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Streak(engine.CheckInDomain).CurrentStreak)

	// Gap: day 4 missed, day 5 resets to 1 with longest preserved.
	_, err = svc.SubmitActivity(ctx, storage.MainUserKey, engine.CheckIn{At: at(5)})
	require.NoError(t, err)

	st, err = svc.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Streak(engine.CheckInDomain).CurrentStreak)
	assert.Equal(t, 3, st.Streak(engine.CheckInDomain).LongestStreak)
}

func TestSubmitInvalidActivityLeavesStateUntouched(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	before, err := svc.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)

	_, err = svc.SubmitActivity(ctx, storage.MainUserKey, engine.QuestCompletion{Title: ""})
	var invalid engine.InvalidActivityError
	require.ErrorAs(t, err, &invalid)

	after, err := svc.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAttributeClamping(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Urgent creative quests add cre+3 each; 40 of them would hit 120
	// unclamped. Days advance to keep timestamps valid.
	for i := 0; i < 40; i++ {
		_, err := svc.SubmitActivity(ctx, storage.MainUserKey, engine.QuestCompletion{
			Title:    "Sketch",
			Type:     "creative",
			Priority: engine.PriorityUrgent,
			At:       at(i + 1),
		})
		require.NoError(t, err)
	}

	st, err := svc.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)
	assert.Equal(t, engine.AttrMax, st.Attributes[engine.AttrCRE])
}

func TestProgressPersistsAcrossServices(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	svc := engine.NewService(store, catalog.Default())
	_, err := svc.SubmitActivity(ctx, storage.MainUserKey, engine.CheckIn{At: at(1)})
	require.NoError(t, err)
	_, err = svc.SubmitActivity(ctx, storage.MainUserKey, engine.QuestCompletion{
		Title: "Run 5k", Type: "health", Priority: engine.PriorityMedium, At: at(1),
	})
	require.NoError(t, err)

	want, err := svc.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)

	// A fresh service over the same store must reload identical state.
	reloaded := engine.NewService(store, catalog.Default())
	got, err := reloaded.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPurchaseSpendGate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Not affordable yet.
	_, err := svc.Purchase(ctx, storage.MainUserKey, "theme_gold")
	require.Error(t, err)

	// Grind coins past the 500 gate.
	for i := 0; i < 25; i++ {
		_, err := svc.SubmitActivity(ctx, storage.MainUserKey, engine.QuestCompletion{
			Title: "Chore", Type: "work", Priority: engine.PriorityUrgent, At: at(i + 1),
		})
		require.NoError(t, err)
	}

	st, err := svc.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)
	require.GreaterOrEqual(t, st.Currency, 500)
	require.False(t, st.IsUnlocked("theme_gold"), "coin-gated unlocks need an explicit purchase")
	coinsBefore := st.Currency

	res, err := svc.Purchase(ctx, storage.MainUserKey, "theme_gold")
	require.NoError(t, err)
	assert.Equal(t, 500, res.Spent)

	st, err = svc.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)
	assert.True(t, st.IsUnlocked("theme_gold"))
	assert.Equal(t, coinsBefore-500, st.Currency)

	_, err = svc.Purchase(ctx, storage.MainUserKey, "theme_gold")
	require.Error(t, err, "repeat purchase must fail")
}

func TestPurchaseRejectsNonPurchasable(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Purchase(ctx, storage.MainUserKey, "theme_midnight")
	require.Error(t, err)
	_, err = svc.Purchase(ctx, storage.MainUserKey, "no_such_thing")
	require.Error(t, err)
}

// failingStore loads fine but refuses every save.
type failingStore struct{}

func (failingStore) LoadProgress(ctx context.Context, userID string) (*engine.ProgressState, error) {
	return nil, nil
}

func (failingStore) SaveProgress(ctx context.Context, userID string, st *engine.ProgressState, rec engine.ActivityRecord) error {
	return errors.New("sync transport down")
}

func TestSaveFailureDoesNotRollBack(t *testing.T) {
	svc := engine.NewService(failingStore{}, catalog.Default())
	ctx := context.Background()

	res, err := svc.SubmitActivity(ctx, storage.MainUserKey, engine.CheckIn{At: at(1)})
	require.NoError(t, err)
	require.Error(t, res.SaveErr)

	// Local state stays authoritative.
	st, err := svc.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)
	assert.Equal(t, 20, st.CurrentExp)
	assert.Equal(t, 10, st.Currency)
	assert.Equal(t, 1, st.Streak(engine.CheckInDomain).CurrentStreak)
}

func TestMultiLevelJumpThroughService(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Seed a snapshot sitting just under a multi-level jump.
	seed := engine.NewProgressState()
	seed.CurrentExp = 149
	require.NoError(t, store.SaveProgress(ctx, storage.MainUserKey, seed, engine.ActivityRecord{
		ID: "seed", UserID: storage.MainUserKey, Kind: "seed", At: at(1),
	}))

	// A catalog with an inflated urgent reward forces the jump.
	c := catalog.Default()
	c.Priorities["urgent"] = catalog.Priority{Exp: 251, Coins: 0, AttributeDelta: 1}
	svc := engine.NewService(store, c)

	res, err := svc.SubmitActivity(ctx, storage.MainUserKey, engine.QuestCompletion{
		Title: "Epic", Type: "work", Priority: engine.PriorityUrgent, At: at(2),
	})
	require.NoError(t, err)

	require.True(t, res.LeveledUp)
	assert.Equal(t, 3, res.NewLevel)
	require.Len(t, res.LevelUps, 2)

	st, err := svc.Progress(ctx, storage.MainUserKey)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Level)
	assert.Equal(t, 100, st.CurrentExp)
	assert.Equal(t, 300, st.MaxExp)
}
