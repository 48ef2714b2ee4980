package catalog

import (
	"fmt"
	"sort"
)

// Catalog bundles the static lookup tables the engine reads at startup:
// quest types, priority weights, level titles, entitlement definitions,
// habit definitions. It is immutable after Validate.
type Catalog struct {
	QuestTypes   map[string]QuestType `yaml:"quest_types"`
	Priorities   map[string]Priority  `yaml:"priorities"`
	Levels       []LevelDefinition    `yaml:"levels"`
	Entitlements []Entitlement        `yaml:"entitlements"`
	Habits       map[string]Habit     `yaml:"habits"`
}

// QuestType maps a quest category to its default attribute.
type QuestType struct {
	Attribute string `yaml:"attribute"`
}

// Priority holds the base reward weights for a quest priority.
type Priority struct {
	Exp            int `yaml:"exp"`
	Coins          int `yaml:"coins"`
	AttributeDelta int `yaml:"attribute_delta"`
}

// LevelDefinition is one row of the level-title table. Lookups are
// floor-matched: the definition for level L is the row with the greatest
// Level <= L.
type LevelDefinition struct {
	Level             int      `yaml:"level"`
	Title             string   `yaml:"title"`
	RewardDescription string   `yaml:"reward_description"`
	Coins             int      `yaml:"coins"`
	Unlocks           []string `yaml:"unlocks"`
}

// Condition types for entitlements.
const (
	CondDefault     = "default"
	CondLevel       = "level"
	CondAchievement = "achievement"
	CondCoins       = "coins"
)

// Entitlement is an unlockable cosmetic, achievement, or feature gate.
type Entitlement struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Condition Condition `yaml:"condition"`
}

type Condition struct {
	Type  string `yaml:"type"`
	Value int    `yaml:"value"`
}

// Habit holds the per-habit base reward used before streak scaling.
type Habit struct {
	Name      string `yaml:"name"`
	Attribute string `yaml:"attribute"`
	BaseExp   int    `yaml:"base_exp"`
	BaseCoins int    `yaml:"base_coins"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		QuestTypes: map[string]QuestType{
			"study":    {Attribute: "int"},
			"health":   {Attribute: "vit"},
			"work":     {Attribute: "mng"},
			"creative": {Attribute: "cre"},
		},
		Priorities: map[string]Priority{
			"low":    {Exp: 10, Coins: 5, AttributeDelta: 1},
			"medium": {Exp: 20, Coins: 10, AttributeDelta: 1},
			"high":   {Exp: 35, Coins: 18, AttributeDelta: 2},
			"urgent": {Exp: 50, Coins: 25, AttributeDelta: 3},
		},
		Levels: []LevelDefinition{
			{Level: 1, Title: "Novice", RewardDescription: "A fresh start", Coins: 0},
			{Level: 5, Title: "Apprentice", RewardDescription: "Small coin purse", Coins: 50, Unlocks: []string{"theme_forest"}},
			{Level: 10, Title: "Adept", RewardDescription: "Coin pouch", Coins: 100, Unlocks: []string{"theme_midnight"}},
			{Level: 20, Title: "Expert", RewardDescription: "Coin chest", Coins: 250, Unlocks: []string{"badge_expert"}},
			{Level: 30, Title: "Veteran", RewardDescription: "Large coin chest", Coins: 400, Unlocks: []string{"theme_ember"}},
			{Level: 40, Title: "Master", RewardDescription: "Master's hoard", Coins: 600, Unlocks: []string{"badge_master"}},
			{Level: 50, Title: "Grandmaster", RewardDescription: "Grandmaster's hoard", Coins: 1000, Unlocks: []string{"theme_aurora"}},
		},
		Entitlements: []Entitlement{
			{ID: "theme_classic", Name: "Classic Theme", Condition: Condition{Type: CondDefault}},
			{ID: "theme_forest", Name: "Forest Theme", Condition: Condition{Type: CondLevel, Value: 5}},
			{ID: "theme_midnight", Name: "Midnight Theme", Condition: Condition{Type: CondLevel, Value: 10}},
			{ID: "theme_ember", Name: "Ember Theme", Condition: Condition{Type: CondLevel, Value: 30}},
			{ID: "theme_aurora", Name: "Aurora Theme", Condition: Condition{Type: CondLevel, Value: 50}},
			{ID: "badge_first_quest", Name: "First Quest", Condition: Condition{Type: CondAchievement, Value: 1}},
			{ID: "badge_diligent", Name: "Diligent", Condition: Condition{Type: CondAchievement, Value: 25}},
			{ID: "badge_expert", Name: "Quest Expert", Condition: Condition{Type: CondAchievement, Value: 100}},
			{ID: "badge_master", Name: "Quest Master", Condition: Condition{Type: CondAchievement, Value: 500}},
			{ID: "theme_gold", Name: "Gold Theme", Condition: Condition{Type: CondCoins, Value: 500}},
			{ID: "theme_platinum", Name: "Platinum Theme", Condition: Condition{Type: CondCoins, Value: 2000}},
		},
		Habits: map[string]Habit{
			"reading":    {Name: "Daily reading", Attribute: "int", BaseExp: 15, BaseCoins: 5},
			"exercise":   {Name: "Exercise", Attribute: "vit", BaseExp: 20, BaseCoins: 8},
			"planning":   {Name: "Plan tomorrow", Attribute: "mng", BaseExp: 10, BaseCoins: 5},
			"journaling": {Name: "Journaling", Attribute: "cre", BaseExp: 12, BaseCoins: 5},
		},
	}
}

// Validate checks internal consistency. The Levels table must be sorted
// ascending by level with no duplicates; entitlement IDs must be unique;
// condition types must be known.
func (c *Catalog) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("catalog: levels table is empty")
	}
	if !sort.SliceIsSorted(c.Levels, func(i, j int) bool { return c.Levels[i].Level < c.Levels[j].Level }) {
		return fmt.Errorf("catalog: levels table must be sorted ascending")
	}
	for i := 1; i < len(c.Levels); i++ {
		if c.Levels[i].Level == c.Levels[i-1].Level {
			return fmt.Errorf("catalog: duplicate level definition %d", c.Levels[i].Level)
		}
	}
	seen := map[string]bool{}
	for _, e := range c.Entitlements {
		if e.ID == "" {
			return fmt.Errorf("catalog: entitlement with empty id")
		}
		if seen[e.ID] {
			return fmt.Errorf("catalog: duplicate entitlement %q", e.ID)
		}
		seen[e.ID] = true
		switch e.Condition.Type {
		case CondDefault:
		case CondLevel, CondAchievement, CondCoins:
			if e.Condition.Value <= 0 {
				return fmt.Errorf("catalog: entitlement %q needs a positive condition value", e.ID)
			}
		default:
			return fmt.Errorf("catalog: entitlement %q has unknown condition type %q", e.ID, e.Condition.Type)
		}
	}
	for name, p := range c.Priorities {
		if p.Exp < 0 || p.Coins < 0 || p.AttributeDelta < 0 {
			return fmt.Errorf("catalog: priority %q has negative weights", name)
		}
	}
	return nil
}

// LevelFor floor-matches the levels table: the definition with the
// greatest Level <= level. Returns nil when level is below every row.
func (c *Catalog) LevelFor(level int) *LevelDefinition {
	idx := sort.Search(len(c.Levels), func(i int) bool { return c.Levels[i].Level > level })
	if idx == 0 {
		return nil
	}
	return &c.Levels[idx-1]
}

// ExactLevel returns the definition whose Level equals level, if any.
// Used by the level-up loop so rewards are granted only on defined rows.
func (c *Catalog) ExactLevel(level int) *LevelDefinition {
	def := c.LevelFor(level)
	if def == nil || def.Level != level {
		return nil
	}
	return def
}
