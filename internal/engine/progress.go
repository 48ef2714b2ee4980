package engine

// ProgressState is the canonical record of a user's progression. It is
// owned by the engine: the only legal mutator is the apply routine driven
// by Service.SubmitActivity, plus the entitlement merge and purchase
// paths. The JSON shape is the persistence format and must round-trip
// exactly.
type ProgressState struct {
	Level      int                      `json:"level"`
	CurrentExp int                      `json:"currentExp"`
	MaxExp     int                      `json:"maxExp"`
	Currency   int                      `json:"currency"`
	Attributes map[AttributeKey]int     `json:"attributes"`
	Wallet     map[AttributeKey]int     `json:"wallet"`
	Stats      Stats                    `json:"stats"`
	Streaks    map[string]StreakCounter `json:"streaks"`
	Unlocked   map[string]bool          `json:"unlockedEntitlements"`
}

type Stats struct {
	TotalQuestsCompleted int `json:"totalQuestsCompleted"`
	TotalFocusTime       int `json:"totalFocusTime"` // minutes
}

// Attribute values are clamped to [AttrMin, AttrMax].
const (
	AttrMin = 0
	AttrMax = 100
)

// NewProgressState returns the starting state: level 1, empty counters,
// all attributes at their floor.
func NewProgressState() *ProgressState {
	st := &ProgressState{
		Level:      1,
		MaxExp:     ExpForNextLevel(1),
		Attributes: map[AttributeKey]int{},
		Wallet:     map[AttributeKey]int{},
		Streaks:    map[string]StreakCounter{},
		Unlocked:   map[string]bool{},
	}
	for _, k := range AttributeKeys() {
		st.Attributes[k] = AttrMin
	}
	return st
}

// Normalize repairs nil maps after JSON decoding of older snapshots.
func (st *ProgressState) Normalize() {
	if st.Attributes == nil {
		st.Attributes = map[AttributeKey]int{}
	}
	if st.Wallet == nil {
		st.Wallet = map[AttributeKey]int{}
	}
	if st.Streaks == nil {
		st.Streaks = map[string]StreakCounter{}
	}
	if st.Unlocked == nil {
		st.Unlocked = map[string]bool{}
	}
	if st.Level < 1 {
		st.Level = 1
	}
	if st.MaxExp <= 0 {
		st.MaxExp = ExpForNextLevel(st.Level)
	}
	for k, v := range st.Attributes {
		st.Attributes[k] = clampAttr(v)
	}
}

// Clone returns a deep copy for read-only consumers, so render code
// can never mutate the engine-owned record.
func (st *ProgressState) Clone() *ProgressState {
	cp := *st
	cp.Attributes = make(map[AttributeKey]int, len(st.Attributes))
	for k, v := range st.Attributes {
		cp.Attributes[k] = v
	}
	cp.Wallet = make(map[AttributeKey]int, len(st.Wallet))
	for k, v := range st.Wallet {
		cp.Wallet[k] = v
	}
	cp.Streaks = make(map[string]StreakCounter, len(st.Streaks))
	for k, v := range st.Streaks {
		if v.LastCompletionDate != nil {
			d := *v.LastCompletionDate
			v.LastCompletionDate = &d
		}
		cp.Streaks[k] = v
	}
	cp.Unlocked = make(map[string]bool, len(st.Unlocked))
	for k, v := range st.Unlocked {
		cp.Unlocked[k] = v
	}
	return &cp
}

// Streak returns the counter for a domain, zero-valued when the domain
// has never completed.
func (st *ProgressState) Streak(domain string) StreakCounter {
	return st.Streaks[domain]
}

// IsUnlocked reports whether an entitlement id is in the unlocked set.
func (st *ProgressState) IsUnlocked(id string) bool {
	return st.Unlocked[id]
}

// UnlockedIDs returns the unlocked entitlement ids (unordered).
func (st *ProgressState) UnlockedIDs() []string {
	out := make([]string, 0, len(st.Unlocked))
	for id := range st.Unlocked {
		out = append(out, id)
	}
	return out
}

// addAttribute applies a delta to one attribute with clamping.
func (st *ProgressState) addAttribute(key AttributeKey, delta int) {
	st.Attributes[key] = clampAttr(st.Attributes[key] + delta)
}

func clampAttr(v int) int {
	if v < AttrMin {
		return AttrMin
	}
	if v > AttrMax {
		return AttrMax
	}
	return v
}
