package store

import "time"

// EventRecord is a persisted reminder event.
type EventRecord struct {
	ID          string
	Kind        string
	Description string
	Payload     map[string]string
	CreatedAt   time.Time
}

// IntakeEntry is a single logged drink.
type IntakeEntry struct {
	ID       int64
	AmountMl int
	LoggedAt time.Time
}

type Setting struct {
	Key   string
	Value string
}

// EventFilter narrows event queries.
type EventFilter struct {
	Kind  string
	Day   string // YYYY-MM-DD, matches created_at's date
	Limit int
}

// DailyIntake is the aggregated intake for one calendar day.
type DailyIntake struct {
	Date    string
	TotalMl int64
	Drinks  int
}
