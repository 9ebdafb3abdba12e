package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/vital/internal/reminder"
	"github.com/sadopc/vital/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewReports
	viewLog
	viewSettings
)

var viewNames = []string{"Dashboard", "Reports", "Log", "Settings"}

// ChannelSink bridges scheduler events into the Bubble Tea loop. Sends never
// block; if the UI lags behind, the event is dropped here (it is still
// persisted by the store sink).
type ChannelSink chan reminder.Event

func (c ChannelSink) Handle(ev reminder.Event) {
	select {
	case c <- ev:
	default:
	}
}

// --- Messages ---

type tickMsg time.Time

type eventMsg reminder.Event

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type dashboardDataMsg struct {
	status      reminder.Status
	todayCounts map[string]int
	recent      []store.IntakeEntry
}

type logDataMsg struct {
	events []store.EventRecord
}

type reportsDataMsg struct {
	days []store.DailyIntake
}

type settingsDataMsg struct {
	settings []store.Setting
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatMl(ml int) string {
	if ml >= 1000 {
		return fmt.Sprintf("%.1fL", float64(ml)/1000)
	}
	return fmt.Sprintf("%dml", ml)
}
