package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/vital/internal/store"
)

type reportsModel struct {
	store  *store.Store
	width  int
	height int

	targetMl int
	days     []store.DailyIntake
	offset   int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newReportsModel(s *store.Store, targetMl int) reportsModel {
	return reportsModel{
		store:    s,
		targetMl: targetMl,
		chart:    barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()
		days, _ := r.store.IntakeByDay(from, to)
		return reportsDataMsg{days: days}
	}
}

func (r reportsModel) dateRange() (time.Time, time.Time) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	end := today.AddDate(0, 0, 1-7*r.offset)
	return end.AddDate(0, 0, -7), end
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.days = msg.days
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := r.dateRange()

	byDate := make(map[string]store.DailyIntake, len(r.days))
	for _, d := range r.days {
		byDate[d.Date] = d
	}

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		label := d.Format("Mon 02")

		liters := 0.0
		style := lipgloss.NewStyle().Foreground(colorSubtle)
		if day, ok := byDate[dateStr]; ok {
			liters = float64(day.TotalMl) / 1000.0
			if int(day.TotalMl) >= r.targetMl {
				style = lipgloss.NewStyle().Foreground(colorSuccess)
			} else {
				style = lipgloss.NewStyle().Foreground(colorPrimary)
			}
		}

		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: "intake", Value: liters, Style: style},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Water Intake (liters/day)"), "  ", dateLabel,
	)

	chartView := r.chart.View()
	tableView := r.renderTable(w)
	legend := fmt.Sprintf("%s target met   %s below target",
		successStyle.Render("●"), lipgloss.NewStyle().Foreground(colorPrimary).Render("●"))
	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", "  "+legend, "", tableView, "", nav,
		),
	)
}

func (r reportsModel) renderTable(w int) string {
	if len(r.days) == 0 {
		return mutedStyle.Render("  No intake logged in this period")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %10s %8s %8s", "Date", "Intake", "Drinks", "Target")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 42))))

	for _, d := range r.days {
		met := mutedStyle.Render("—")
		if int(d.TotalMl) >= r.targetMl {
			met = successStyle.Render("✓")
		}
		rows = append(rows, fmt.Sprintf("  %-12s %10s %8d %8s",
			d.Date, formatMl(int(d.TotalMl)), d.Drinks, met))
	}

	return strings.Join(rows, "\n")
}
