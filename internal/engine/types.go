package engine

import (
	"strings"
	"time"
)

type AttributeKey string

const (
	AttrINT AttributeKey = "int"
	AttrVIT AttributeKey = "vit"
	AttrMNG AttributeKey = "mng"
	AttrCRE AttributeKey = "cre"
)

func (a AttributeKey) IsValid() bool {
	switch a {
	case AttrINT, AttrVIT, AttrMNG, AttrCRE:
		return true
	default:
		return false
	}
}

// AttributeKeys lists every attribute in display order.
func AttributeKeys() []AttributeKey {
	return []AttributeKey{AttrINT, AttrVIT, AttrMNG, AttrCRE}
}

// DefaultAttribute is used when user input is missing/invalid.
const DefaultAttribute AttributeKey = AttrMNG

// ParseAttribute parses user input to an AttributeKey.
// Supported: int, vit, mng, cre (plus a few aliases).
// Empty or unrecognized input returns DefaultAttribute.
func ParseAttribute(input string) AttributeKey {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "int", "intellect", "mind":
		return AttrINT
	case "vit", "vitality", "health":
		return AttrVIT
	case "mng", "management", "work":
		return AttrMNG
	case "cre", "creativity", "art":
		return AttrCRE
	default:
		return DefaultAttribute
	}
}

type QuestPriority string

const (
	PriorityLow    QuestPriority = "low"
	PriorityMedium QuestPriority = "medium"
	PriorityHigh   QuestPriority = "high"
	PriorityUrgent QuestPriority = "urgent"
)

func (p QuestPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// CheckInDomain is the streak domain used for daily check-ins. Habit
// completions use the habit's own identifier as their domain.
const CheckInDomain = "checkin"

// Activity is a user action that may yield rewards: a quest completion,
// a habit log, or a daily check-in.
type Activity interface {
	// Kind returns a short stable identifier used for the activity log.
	Kind() string
	// Validate rejects malformed payloads before any state access.
	Validate() error
}

type QuestCompletion struct {
	Title        string
	Type         string
	Priority     QuestPriority
	FocusMinutes int
	At           time.Time
}

func (QuestCompletion) Kind() string { return "quest" }

func (q QuestCompletion) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return InvalidActivityError{Reason: "quest title is required"}
	}
	if !q.Priority.IsValid() {
		return InvalidActivityError{Reason: "invalid quest priority: " + string(q.Priority)}
	}
	if q.FocusMinutes < 0 {
		return InvalidActivityError{Reason: "focus minutes must not be negative"}
	}
	if q.At.IsZero() {
		return InvalidActivityError{Reason: "quest completion time is required"}
	}
	return nil
}

type HabitCompletion struct {
	HabitID string
	At      time.Time
}

func (HabitCompletion) Kind() string { return "habit" }

func (h HabitCompletion) Validate() error {
	if strings.TrimSpace(h.HabitID) == "" {
		return InvalidActivityError{Reason: "habit id is required"}
	}
	if h.At.IsZero() {
		return InvalidActivityError{Reason: "habit completion time is required"}
	}
	return nil
}

type CheckIn struct {
	At time.Time
}

func (CheckIn) Kind() string { return "checkin" }

func (c CheckIn) Validate() error {
	if c.At.IsZero() {
		return InvalidActivityError{Reason: "check-in time is required"}
	}
	return nil
}
