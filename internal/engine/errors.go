package engine

import (
	"fmt"
	"time"
)

// AlreadyCheckedInError is returned when a second check-in arrives for a
// calendar day that was already checked in. State is left untouched; the
// caller should surface it as a friendly no-op.
type AlreadyCheckedInError struct {
	Date time.Time
}

func (e AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("already checked in on %s", e.Date.Format("2006-01-02"))
}

// StaleCompletionError is returned when a completion date is earlier than
// the last recorded completion for its streak domain. State is left
// untouched.
type StaleCompletionError struct {
	Domain string
	Last   time.Time
	Got    time.Time
}

func (e StaleCompletionError) Error() string {
	return fmt.Sprintf("stale completion for %q: got %s, last recorded %s",
		e.Domain, e.Got.Format("2006-01-02"), e.Last.Format("2006-01-02"))
}

// InvalidActivityError is returned for malformed or unknown activity
// payloads, before any state access.
type InvalidActivityError struct {
	Reason string
}

func (e InvalidActivityError) Error() string {
	return fmt.Sprintf("invalid activity: %s", e.Reason)
}
