package engine

import (
	"fmt"
	"time"
)

// StreakCounter tracks consecutive-day completions in one domain. The
// zero value means "never completed".
type StreakCounter struct {
	CurrentStreak      int        `json:"currentStreak"`
	LongestStreak      int        `json:"longestStreak"`
	LastCompletionDate *time.Time `json:"lastCompletionDate"`
}

// dayStart truncates a time to its UTC calendar day.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(dayStart(b).Sub(dayStart(a)) / (24 * time.Hour))
}

// SameDay reports whether date falls on the same calendar day as the
// last recorded completion.
func (sc StreakCounter) SameDay(date time.Time) bool {
	return sc.LastCompletionDate != nil && daysBetween(*sc.LastCompletionDate, date) == 0
}

// Advance returns the counter after recording a completion on date.
// Same-day repeats are idempotent and return the counter unchanged. A
// gap of exactly one day increments; any larger gap (or the first-ever
// completion) resets the current streak to 1. Dates earlier than the
// last recorded completion are rejected with StaleCompletionError and
// leave the receiver untouched.
func (sc StreakCounter) Advance(domain string, date time.Time) (StreakCounter, error) {
	day := dayStart(date)

	if sc.LastCompletionDate == nil {
		sc.CurrentStreak = 1
		sc.LastCompletionDate = &day
		if sc.LongestStreak < 1 {
			sc.LongestStreak = 1
		}
		return sc, nil
	}

	gap := daysBetween(*sc.LastCompletionDate, date)
	switch {
	case gap < 0:
		return sc, StaleCompletionError{Domain: domain, Last: *sc.LastCompletionDate, Got: day}
	case gap == 0:
		return sc, nil
	case gap == 1:
		sc.CurrentStreak++
	default:
		sc.CurrentStreak = 1
	}

	sc.LastCompletionDate = &day
	if sc.CurrentStreak > sc.LongestStreak {
		sc.LongestStreak = sc.CurrentStreak
	}
	return sc, nil
}

// milestones is the ordered special-day table for the check-in domain.
var milestoneDays = []int{7, 14, 21, 28, 30, 60, 90, 100, 180, 365}

// CheckInDailyReward is the base (non-milestone) daily check-in reward,
// growing by 5 exp and 5 coins for every 5 days of streak.
func CheckInDailyReward(streak int) RewardBundle {
	step := 5 * (streak / 5)
	return RewardBundle{
		Exp:      20 + step,
		Currency: 10 + step,
	}
}

// MilestoneReward returns the fixed bonus bundle for a milestone streak
// day in the check-in domain, or nil for a non-milestone day. Days 7,
// 14, 21, 28 and 30 carry distinct fixed bonuses; past day 30 every
// multiple of 30 grants a scaling bonus, and every multiple of 100 a
// larger one that takes precedence when a day satisfies both.
func MilestoneReward(consecutiveDays int) *RewardBundle {
	evenCoins := func(n int) map[AttributeKey]int {
		return map[AttributeKey]int{AttrINT: n, AttrVIT: n, AttrMNG: n, AttrCRE: n}
	}

	switch consecutiveDays {
	case 7:
		return &RewardBundle{
			Exp: 50, Currency: 30,
			CategorizedCurrency: evenCoins(10),
			BonusMessage:        "One full week of check-ins!",
			IsSpecial:           true,
		}
	case 14:
		return &RewardBundle{
			Exp: 80, Currency: 50,
			CategorizedCurrency: evenCoins(15),
			BonusMessage:        "Two weeks strong!",
			IsSpecial:           true,
		}
	case 21:
		return &RewardBundle{
			Exp: 120, Currency: 80,
			CategorizedCurrency: evenCoins(20),
			BonusMessage:        "Three weeks — a habit is forming!",
			IsSpecial:           true,
		}
	case 28:
		return &RewardBundle{
			Exp: 160, Currency: 100,
			CategorizedCurrency: evenCoins(25),
			BonusMessage:        "Four weeks of dedication!",
			IsSpecial:           true,
		}
	case 30:
		return &RewardBundle{
			Exp: 200, Currency: 150,
			CategorizedCurrency: evenCoins(30),
			BonusMessage:        "A whole month — incredible!",
			IsSpecial:           true,
		}
	}

	if consecutiveDays > 30 {
		// Multiple-of-100 bonus wins when a day (e.g. 300) satisfies both.
		if consecutiveDays%100 == 0 {
			n := consecutiveDays / 100
			return &RewardBundle{
				Exp: 300 + 100*n, Currency: 200 + 50*n,
				CategorizedCurrency: evenCoins(30 + 10*n),
				BonusMessage:        fmt.Sprintf("%d days — legendary!", consecutiveDays),
				IsSpecial:           true,
			}
		}
		if consecutiveDays%30 == 0 {
			n := consecutiveDays / 30
			return &RewardBundle{
				Exp: 150 + 50*n, Currency: 100 + 30*n,
				CategorizedCurrency: evenCoins(20 + 5*n),
				BonusMessage:        fmt.Sprintf("%d months of check-ins!", n),
				IsSpecial:           true,
			}
		}
	}
	return nil
}

// NextMilestone returns the next milestone day strictly greater than
// currentDays. Past the fixed table it falls back to the next multiple
// of 30.
func NextMilestone(currentDays int) int {
	for _, d := range milestoneDays {
		if d > currentDays {
			return d
		}
	}
	return (currentDays/30 + 1) * 30
}
