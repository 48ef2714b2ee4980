package engine

import (
	"testing"

	"github.com/wenci-bit/LifePRG-sub002/internal/catalog"
)

func TestExpForNextLevelCurve(t *testing.T) {
	prev := 0
	for level := 1; level <= 200; level++ {
		got := ExpForNextLevel(level)
		if got <= 0 {
			t.Fatalf("ExpForNextLevel(%d)=%d, want > 0", level, got)
		}
		if got < prev {
			t.Fatalf("ExpForNextLevel(%d)=%d decreased from %d", level, got, prev)
		}
		prev = got
	}
	if got := ExpForNextLevel(1); got != 150 {
		t.Fatalf("ExpForNextLevel(1)=%d, want 150", got)
	}
	if got := ExpForNextLevel(3); got != 450 {
		t.Fatalf("ExpForNextLevel(3)=%d, want 450", got)
	}
}

func TestExpBonusMultiplierSteps(t *testing.T) {
	cases := []struct {
		level int
		want  float64
	}{
		{1, 1.0}, {9, 1.0}, {10, 1.1}, {19, 1.1},
		{20, 1.2}, {39, 1.2}, {40, 1.3}, {99, 1.3},
	}
	for _, tc := range cases {
		if got := ExpBonusMultiplier(tc.level); got != tc.want {
			t.Fatalf("ExpBonusMultiplier(%d)=%v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestStreakBonusMultiplierSteps(t *testing.T) {
	cases := []struct {
		streak int
		want   float64
	}{
		{0, 1.0}, {2, 1.0}, {3, 1.1}, {6, 1.1},
		{7, 1.2}, {13, 1.2}, {14, 1.3}, {29, 1.3}, {30, 1.5}, {365, 1.5},
	}
	for _, tc := range cases {
		if got := StreakBonusMultiplier(tc.streak); got != tc.want {
			t.Fatalf("StreakBonusMultiplier(%d)=%v, want %v", tc.streak, got, tc.want)
		}
	}
}

func TestLevelTitleFloorMatch(t *testing.T) {
	c := catalog.Default()
	if got := LevelTitle(c, 1); got != "Novice" {
		t.Fatalf("LevelTitle(1)=%q, want Novice", got)
	}
	if got := LevelTitle(c, 7); got != "Apprentice" {
		t.Fatalf("LevelTitle(7)=%q, want Apprentice (floor match on level 5)", got)
	}
	if got := LevelTitle(c, 999); got != "Grandmaster" {
		t.Fatalf("LevelTitle(999)=%q, want Grandmaster", got)
	}

	// Below every table row falls back to the novice label.
	sparse := &catalog.Catalog{Levels: []catalog.LevelDefinition{{Level: 10, Title: "Adept"}}}
	if got := LevelTitle(sparse, 1); got != NoviceTitle {
		t.Fatalf("LevelTitle below table=%q, want %q", got, NoviceTitle)
	}
}

func TestLevelUpLoopMultiLevelJump(t *testing.T) {
	c := catalog.Default()
	st := NewProgressState()
	if st.Level != 1 || st.MaxExp != 150 || st.CurrentExp != 0 {
		t.Fatalf("unexpected starting state: level=%d maxExp=%d exp=%d", st.Level, st.MaxExp, st.CurrentExp)
	}

	ups := applyExp(c, st, 400)

	// 400 exp burns the 150 threshold twice before the recomputed
	// 300 threshold gates the loop: level 3 with 100 carried over.
	if st.Level != 3 {
		t.Fatalf("level=%d, want 3", st.Level)
	}
	if st.CurrentExp != 100 {
		t.Fatalf("currentExp=%d, want 100", st.CurrentExp)
	}
	if st.MaxExp != 300 {
		t.Fatalf("maxExp=%d, want 300", st.MaxExp)
	}
	if len(ups) != 2 {
		t.Fatalf("got %d level-ups, want 2", len(ups))
	}
	if ups[0].Level != 2 || ups[1].Level != 3 {
		t.Fatalf("level-up sequence %v, want levels 2 then 3", ups)
	}
	if st.CurrentExp >= st.MaxExp {
		t.Fatalf("invariant violated: currentExp %d >= maxExp %d", st.CurrentExp, st.MaxExp)
	}
}

func TestLevelUpGrantsDefinedRewards(t *testing.T) {
	c := catalog.Default()
	st := NewProgressState()
	st.Level = 4
	st.MaxExp = ExpForNextLevel(4)

	ups := applyExp(c, st, st.MaxExp)
	if len(ups) != 1 || ups[0].Level != 5 {
		t.Fatalf("expected a single level-up to 5, got %v", ups)
	}
	if ups[0].Coins != 50 {
		t.Fatalf("level 5 coins=%d, want 50", ups[0].Coins)
	}
	if st.Currency != 50 {
		t.Fatalf("currency=%d, want 50 after level-5 reward", st.Currency)
	}
	if len(ups[0].Unlocks) != 1 || ups[0].Unlocks[0] != "theme_forest" {
		t.Fatalf("level 5 unlocks=%v, want [theme_forest]", ups[0].Unlocks)
	}
}
