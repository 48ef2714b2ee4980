package engine

import (
	"math"

	"github.com/wenci-bit/LifePRG-sub002/internal/catalog"
)

// NoviceTitle is the fallback when the levels table has no row at or
// below the queried level.
const NoviceTitle = "Novice"

// ExpForNextLevel returns the exp threshold used as MaxExp: floor(level * 100 * 1.5).
// Strictly positive and monotonically increasing for level >= 1.
func ExpForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(float64(level) * 100 * 1.5))
}

// ExpBonusMultiplier is the level-based step bonus applied to raw quest exp.
func ExpBonusMultiplier(level int) float64 {
	switch {
	case level >= 40:
		return 1.3
	case level >= 20:
		return 1.2
	case level >= 10:
		return 1.1
	default:
		return 1.0
	}
}

// StreakBonusMultiplier is the streak-based step bonus applied to habit rewards.
func StreakBonusMultiplier(streak int) float64 {
	switch {
	case streak >= 30:
		return 1.5
	case streak >= 14:
		return 1.3
	case streak >= 7:
		return 1.2
	case streak >= 3:
		return 1.1
	default:
		return 1.0
	}
}

// LevelTitle floor-matches the level-title table; never fails.
func LevelTitle(c *catalog.Catalog, level int) string {
	if def := c.LevelFor(level); def != nil {
		return def.Title
	}
	return NoviceTitle
}

// LevelUp is the notification payload for one gained level.
type LevelUp struct {
	Level   int
	Title   string
	Coins   int
	Unlocks []string
}

// applyExp adds exp to the state and runs the level-up loop, carrying
// the remainder across levels. The loop (rather than a single branch)
// is what lets one large award cross several levels: the new MaxExp is
// derived from the level being left behind, so the cheaper threshold is
// consumed before the curve catches up.
func applyExp(c *catalog.Catalog, st *ProgressState, exp int) []LevelUp {
	st.CurrentExp += exp

	var ups []LevelUp
	for st.CurrentExp >= st.MaxExp {
		st.CurrentExp -= st.MaxExp
		st.MaxExp = ExpForNextLevel(st.Level)
		st.Level++

		up := LevelUp{Level: st.Level, Title: LevelTitle(c, st.Level)}
		if def := c.ExactLevel(st.Level); def != nil {
			up.Coins = def.Coins
			up.Unlocks = def.Unlocks
		}
		st.Currency += up.Coins
		ups = append(ups, up)
	}
	return ups
}
