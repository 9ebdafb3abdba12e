package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/vital/internal/health"
	"github.com/sadopc/vital/internal/reminder"
	"github.com/sadopc/vital/internal/store"
)

// logModel shows today's activity log, newest first.
type logModel struct {
	store  *store.Store
	width  int
	height int

	events []store.EventRecord
}

func newLogModel(s *store.Store) logModel {
	return logModel{store: s}
}

func (l *logModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l logModel) refresh() tea.Cmd {
	return func() tea.Msg {
		today := health.DayOf(time.Now())
		events, _ := l.store.ListEvents(store.EventFilter{Day: today, Limit: 20})
		return logDataMsg{events: events}
	}
}

func (l logModel) update(msg tea.Msg) (logModel, tea.Cmd) {
	switch msg := msg.(type) {
	case logDataMsg:
		l.events = msg.events
		return l, nil
	case eventMsg:
		return l, l.refresh()
	}
	return l, nil
}

func (l logModel) view() string {
	w := l.width - 4
	title := titleStyle.Render("Activity Log — " + time.Now().Format("Mon, Jan 2"))

	if len(l.events) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No events logged today yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for _, e := range l.events {
		at := e.CreatedAt.Local().Format("15:04:05")
		rows = append(rows, fmt.Sprintf("  %s %s  %s",
			kindDot(e.Kind), mutedStyle.Render(at), e.Description))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func kindDot(kind string) string {
	switch reminder.EventKind(kind) {
	case reminder.EventWaterReminder, reminder.EventWaterIntake:
		return highlightStyle.Render("●")
	case reminder.EventBreakReminder, reminder.EventBreakTaken:
		return warningStyle.Render("●")
	case reminder.EventAchievement:
		return successStyle.Render("●")
	case reminder.EventSessionStart, reminder.EventSessionEnd:
		return accentStyle.Render("●")
	default:
		return mutedStyle.Render("●")
	}
}
