package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/vital/internal/health"
	"github.com/sadopc/vital/internal/reminder"
	"github.com/sadopc/vital/internal/store"
)

type dashboardModel struct {
	store *store.Store
	sched *reminder.Scheduler
	width  int
	height int

	status      reminder.Status
	todayCounts map[string]int
	recent      []store.IntakeEntry

	// Custom amount entry
	entering    bool
	amountInput textinput.Model
}

func newDashboardModel(s *store.Store, sched *reminder.Scheduler) dashboardModel {
	input := textinput.New()
	input.Placeholder = "amount in ml"
	input.CharLimit = 5
	input.Width = 16

	return dashboardModel{
		store:       s,
		sched:       sched,
		amountInput: input,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		today := health.DayOf(time.Now())
		counts, _ := d.store.CountEventsByKind(today)
		recent, _ := d.store.ListIntake(5)
		return dashboardDataMsg{
			status:      d.sched.Status(),
			todayCounts: counts,
			recent:      recent,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.status = msg.status
		d.todayCounts = msg.todayCounts
		d.recent = msg.recent
		return d, nil

	case tickMsg:
		d.status = d.sched.Status()
		return d, nil

	case tea.KeyMsg:
		if d.entering {
			return d.updateAmountEntry(msg)
		}

		switch {
		case key.Matches(msg, keys.Drink):
			return d.logDrink(250)
		case key.Matches(msg, keys.BigSip):
			return d.logDrink(500)
		case key.Matches(msg, keys.Custom):
			d.entering = true
			d.amountInput.SetValue("")
			return d, d.amountInput.Focus()
		case key.Matches(msg, keys.Start):
			if err := d.sched.StartSession(); err != nil {
				return d, errorStatus(err)
			}
			return d, tea.Batch(d.loadData(), status("Work session started"))
		case key.Matches(msg, keys.End):
			if err := d.sched.EndSession(); err != nil {
				return d, errorStatus(err)
			}
			return d, tea.Batch(d.loadData(), status("Work session ended"))
		case key.Matches(msg, keys.Break):
			d.sched.TakeBreak()
			return d, tea.Batch(d.loadData(), status("Break taken, continuous work reset"))
		case key.Matches(msg, keys.Dismiss):
			d.sched.DismissBreak()
			return d, status("Break reminder dismissed")
		}
	}
	return d, nil
}

func (d dashboardModel) updateAmountEntry(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		d.entering = false
		d.amountInput.Blur()
		return d, nil
	case key.Matches(msg, keys.Enter):
		d.entering = false
		d.amountInput.Blur()
		amount, err := strconv.Atoi(strings.TrimSpace(d.amountInput.Value()))
		if err != nil {
			return d, status("Amount must be a number")
		}
		return d.logDrink(amount)
	}

	var cmd tea.Cmd
	d.amountInput, cmd = d.amountInput.Update(msg)
	return d, cmd
}

func (d dashboardModel) logDrink(amountMl int) (dashboardModel, tea.Cmd) {
	if err := d.sched.LogIntake(amountMl); err != nil {
		return d, errorStatus(err)
	}
	if _, err := d.store.LogIntake(amountMl, time.Now()); err != nil {
		return d, errorStatus(err)
	}
	return d, tea.Batch(
		d.loadData(),
		status(fmt.Sprintf("Logged %s", formatMl(amountMl))),
	)
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorStatus(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true} }
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	waterPanel := d.renderWaterPanel(contentWidth)
	sessionPanel := d.renderSessionPanel(contentWidth)

	var bottomPanel string
	if d.entering {
		bottomPanel = d.renderAmountEntry(contentWidth)
	} else {
		bottomPanel = d.renderTodayPanel(contentWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left, waterPanel, sessionPanel, bottomPanel)
}

func (d dashboardModel) renderWaterPanel(w int) string {
	title := titleStyle.Render("Hydration")
	progress := fmt.Sprintf("%s / %s  (%.1f%%)",
		formatMl(d.status.ConsumedMl), formatMl(d.status.TargetMl), d.status.ProgressRatio*100)

	bar := renderBar(d.status.ProgressRatio, min(w-8, 50))

	detail := fmt.Sprintf("remaining %s   next reminder in %s",
		formatMl(d.status.RemainingMl), formatClock(d.status.NextWaterIn))
	if d.status.RemainingMl == 0 {
		detail = successStyle.Render("Daily target reached!")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s  %s", title, highlightStyle.Render(progress)),
		"",
		bar,
		mutedStyle.Render(detail),
	)
	return panelStyle.Width(w).Render(content)
}

func renderBar(ratio float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	bar := successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
	return bar
}

func (d dashboardModel) renderSessionPanel(w int) string {
	title := titleStyle.Render("Work Session")

	var stateLine, timeLine string
	if d.status.SessionActive {
		stateLine = successStyle.Render("●  ACTIVE")
		timeLine = timerRunningStyle.Render(formatDuration(d.status.SessionElapsed))
	} else {
		stateLine = mutedStyle.Render("■  IDLE")
		timeLine = timerStyle.Render("00:00:00")
	}

	statsLine := mutedStyle.Render(fmt.Sprintf(
		"continuous work %s   sessions completed %d",
		formatDuration(d.status.ContinuousWork), d.status.CompletedSessions,
	))

	var breakLine string
	switch d.status.PendingBreak {
	case health.BreakShort:
		breakLine = warningStyle.Render("☕ Short break due — b to take it, m to dismiss")
	case health.BreakLong:
		breakLine = accentStyle.Render("🌙 Long break due — b to take it, m to dismiss")
	}

	rows := []string{
		fmt.Sprintf("%s  %s", title, stateLine),
		timeLine,
		statsLine,
	}
	if breakLine != "" {
		rows = append(rows, breakLine)
	}

	style := panelStyle
	if d.status.PendingBreak != health.BreakNone {
		style = activePanelStyle
	}
	return style.Width(w).Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, fmt.Sprintf("  water reminders %d   break reminders %d   achievements %d",
		d.todayCounts[string(reminder.EventWaterReminder)],
		d.todayCounts[string(reminder.EventBreakReminder)],
		d.todayCounts[string(reminder.EventAchievement)],
	))

	if len(d.recent) == 0 {
		rows = append(rows, mutedStyle.Render("  No drinks logged yet — press d for 250ml"))
	} else {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  Recent drinks"))
		for _, e := range d.recent {
			rows = append(rows, fmt.Sprintf("  💧 %s  %s",
				e.LoggedAt.Local().Format("15:04"), formatMl(e.AmountMl)))
		}
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderAmountEntry(w int) string {
	title := titleStyle.Render("Log custom amount")
	rows := []string{
		title,
		"",
		d.amountInput.View(),
		"",
		mutedStyle.Render("  enter: log  esc: cancel"),
	}
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
