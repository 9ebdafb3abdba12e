package health

import (
	"fmt"
	"time"
)

// sessionState is the work session mode.
type sessionState int

const (
	sessionIdle sessionState = iota
	sessionActive
)

// SessionTracker tracks the running work session and the count of completed
// sessions. Elapsed time is per running session and resets on Start;
// continuous work time survives sessions and only resets when a break is
// taken. Not safe for concurrent use; the scheduler serializes access.
type SessionTracker struct {
	state             sessionState
	startedAt         time.Time
	elapsed           time.Duration
	continuousWork    time.Duration
	completedSessions int
}

// NewSessionTracker returns an idle tracker.
func NewSessionTracker() *SessionTracker {
	return &SessionTracker{}
}

// Start begins a new work session.
func (s *SessionTracker) Start(now time.Time) error {
	if s.state == sessionActive {
		return fmt.Errorf("%w: session already active", ErrInvalidState)
	}
	s.state = sessionActive
	s.startedAt = now
	s.elapsed = 0
	return nil
}

// End finalizes the running session. The continuous work counter keeps its
// value: only a break clears it.
func (s *SessionTracker) End() error {
	if s.state != sessionActive {
		return fmt.Errorf("%w: no active session", ErrInvalidState)
	}
	s.state = sessionIdle
	s.startedAt = time.Time{}
	return nil
}

// Tick advances the session clocks while active; a tick in idle is a no-op.
func (s *SessionTracker) Tick(delta time.Duration) {
	if s.state != sessionActive || delta <= 0 {
		return
	}
	s.elapsed += delta
	s.continuousWork += delta
}

// TakeBreak acknowledges a break in either state: resets continuous work
// time and counts the session as completed.
func (s *SessionTracker) TakeBreak() {
	s.continuousWork = 0
	s.completedSessions++
}

// ResetCounts clears the completed-session counter, used on day rollover or
// an explicit reset.
func (s *SessionTracker) ResetCounts() {
	s.completedSessions = 0
}

func (s *SessionTracker) Active() bool                   { return s.state == sessionActive }
func (s *SessionTracker) StartedAt() time.Time           { return s.startedAt }
func (s *SessionTracker) Elapsed() time.Duration         { return s.elapsed }
func (s *SessionTracker) ContinuousWork() time.Duration  { return s.continuousWork }
func (s *SessionTracker) CompletedSessions() int         { return s.completedSessions }
