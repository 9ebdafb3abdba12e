package health

import (
	"fmt"
	"time"
)

// DayOf returns the calendar day of t in its own location, used for
// rollover detection.
func DayOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// IntakeTracker accumulates logged fluid intake for the current day.
// Not safe for concurrent use; the scheduler serializes access.
type IntakeTracker struct {
	targetMl   int
	consumedMl int
	day        string

	achieved      bool // target reached at least once today
	justAchieved  bool // one-shot, cleared by JustReachedTarget
}

// NewIntakeTracker creates a tracker for the given daily target.
func NewIntakeTracker(targetMl int, day string) (*IntakeTracker, error) {
	if targetMl <= 0 {
		return nil, fmt.Errorf("%w: daily target must be positive, got %d", ErrInvalidInput, targetMl)
	}
	return &IntakeTracker{targetMl: targetMl, day: day}, nil
}

// SetTarget replaces the daily target, e.g. after a profile update.
// Consumed progress is kept.
func (t *IntakeTracker) SetTarget(targetMl int) error {
	if targetMl <= 0 {
		return fmt.Errorf("%w: daily target must be positive, got %d", ErrInvalidInput, targetMl)
	}
	t.targetMl = targetMl
	return nil
}

// LogIntake records a drink of amountMl.
func (t *IntakeTracker) LogIntake(amountMl int) error {
	if amountMl <= 0 {
		return fmt.Errorf("%w: intake amount must be positive, got %d", ErrInvalidInput, amountMl)
	}
	t.consumedMl += amountMl
	if !t.achieved && t.consumedMl >= t.targetMl {
		t.achieved = true
		t.justAchieved = true
	}
	return nil
}

// Restore seeds today's consumed total, e.g. from the persisted intake log
// at startup. The achievement latch is set without firing the one-shot so a
// restart does not re-announce an already reached target.
func (t *IntakeTracker) Restore(consumedMl int) {
	if consumedMl < 0 {
		consumedMl = 0
	}
	t.consumedMl = consumedMl
	t.achieved = consumedMl >= t.targetMl
	t.justAchieved = false
}

// Rollover resets the day counter when the calendar day changes.
// Idempotent within the same day.
func (t *IntakeTracker) Rollover(day string) bool {
	if day == t.day {
		return false
	}
	t.day = day
	t.consumedMl = 0
	t.achieved = false
	t.justAchieved = false
	return true
}

// ProgressRatio reports consumed/target capped at 1.
func (t *IntakeTracker) ProgressRatio() float64 {
	ratio := float64(t.consumedMl) / float64(t.targetMl)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// RemainingMl reports how much is left to the target, never negative.
func (t *IntakeTracker) RemainingMl() int {
	remaining := t.targetMl - t.consumedMl
	if remaining < 0 {
		return 0
	}
	return remaining
}

// JustReachedTarget reports whether the target was crossed since the last
// call, then clears the signal. Fires at most once per day.
func (t *IntakeTracker) JustReachedTarget() bool {
	fired := t.justAchieved
	t.justAchieved = false
	return fired
}

func (t *IntakeTracker) ConsumedMl() int { return t.consumedMl }
func (t *IntakeTracker) TargetMl() int   { return t.targetMl }
func (t *IntakeTracker) Day() string     { return t.day }
