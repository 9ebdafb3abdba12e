package health

import "time"

// BreakKind is the outcome of a break decision.
type BreakKind string

const (
	// BreakNone is the zero value: no break is due.
	BreakNone  BreakKind = ""
	BreakShort BreakKind = "short"
	BreakLong  BreakKind = "long"
)

// BreakConfig holds the pomodoro durations and the adaptive long-break
// threshold.
type BreakConfig struct {
	WorkDuration       time.Duration
	ShortBreak         time.Duration
	LongBreak          time.Duration
	SessionsBeforeLong int
	LongBreakThreshold time.Duration
}

// DefaultBreakConfig returns the classic 25/5/15 pomodoro with a long break
// every 4 sessions and an adaptive override after 2 hours of continuous work.
func DefaultBreakConfig() BreakConfig {
	return BreakConfig{
		WorkDuration:       25 * time.Minute,
		ShortBreak:         5 * time.Minute,
		LongBreak:          15 * time.Minute,
		SessionsBeforeLong: 4,
		LongBreakThreshold: 2 * time.Hour,
	}
}

// BreakDecision pairs the kind of break due with its duration.
type BreakDecision struct {
	Kind     BreakKind
	Duration time.Duration
}

// DecideBreak applies the break rules in precedence order:
//
//  1. continuous work past the adaptive threshold forces a long break
//  2. a full work interval on a long-break-multiple session count earns a
//     long break
//  3. a full work interval earns a short break
//  4. otherwise no break is due
//
// Pure and stateless; the scheduler re-evaluates it on every tick.
func DecideBreak(continuousWork time.Duration, completedSessions int, cfg BreakConfig) BreakDecision {
	if cfg.LongBreakThreshold > 0 && continuousWork >= cfg.LongBreakThreshold {
		return BreakDecision{Kind: BreakLong, Duration: cfg.LongBreak}
	}
	if completedSessions > 0 && cfg.SessionsBeforeLong > 0 &&
		completedSessions%cfg.SessionsBeforeLong == 0 &&
		continuousWork >= cfg.WorkDuration {
		return BreakDecision{Kind: BreakLong, Duration: cfg.LongBreak}
	}
	if continuousWork >= cfg.WorkDuration {
		return BreakDecision{Kind: BreakShort, Duration: cfg.ShortBreak}
	}
	return BreakDecision{Kind: BreakNone}
}
