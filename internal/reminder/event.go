package reminder

import (
	"time"

	"github.com/google/uuid"
)

// EventKind tags the closed set of event variants the scheduler emits.
type EventKind string

const (
	EventWaterReminder EventKind = "water_reminder"
	EventBreakReminder EventKind = "break_reminder"
	EventAchievement   EventKind = "achievement"
	EventWaterIntake   EventKind = "water_intake"
	EventSessionStart  EventKind = "session_start"
	EventSessionEnd    EventKind = "session_end"
	EventBreakTaken    EventKind = "break_taken"
)

// Payload keys used by the emitted events. Sinks pick out the keys they
// understand and ignore the rest.
const (
	PayloadAmountMl    = "amount_ml"
	PayloadProgressPct = "progress_pct"
	PayloadBreakKind   = "break_kind"
	PayloadDurationSec = "duration_sec"
	PayloadSessions    = "sessions_completed"
	PayloadWeightKg    = "weight_kg"
	PayloadActivity    = "activity_level"
)

// Event is an immutable reminder record. The scheduler hands it to the sink
// and keeps no reference afterwards.
type Event struct {
	ID          string
	Kind        EventKind
	At          time.Time
	Description string
	Payload     map[string]string
}

// NewEvent builds an event with a fresh ID.
func NewEvent(kind EventKind, at time.Time, description string, payload map[string]string) Event {
	return Event{
		ID:          uuid.NewString(),
		Kind:        kind,
		At:          at,
		Description: description,
		Payload:     payload,
	}
}
