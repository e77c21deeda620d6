package entity

import "time"

const (
	// DefaultEase is the ease assigned to an item entering study.
	DefaultEase = 2.5
	// MinimumEase is the floor enforced on every retention update.
	MinimumEase = 1.3
)

// RetentionState is the per-learner spaced repetition record of one item.
// It is a value type; copies never share state.
type RetentionState struct {
	Ease         float64   `json:"ease"`
	IntervalDays int       `json:"interval_days"`
	Repetitions  int       `json:"repetitions"`
	DueDate      time.Time `json:"due_date"`
}

// NewRetentionState returns the state of a never-reviewed item, due at now.
// A non-positive ease falls back to DefaultEase.
func NewRetentionState(ease float64, now time.Time) RetentionState {
	if ease <= 0 {
		ease = DefaultEase
	}
	return RetentionState{Ease: ease, DueDate: now}
}

// IsDue reports whether the item should be reviewed at now.
func (s RetentionState) IsDue(now time.Time) bool {
	return !s.DueDate.After(now)
}
