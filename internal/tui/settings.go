package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/vital/internal/health"
	"github.com/sadopc/vital/internal/reminder"
	"github.com/sadopc/vital/internal/store"
)

type settingsModel struct {
	store  *store.Store
	sched  *reminder.Scheduler
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	weight          *string
	heightCm        *string
	activity        *string
	workMin         *string
	shortBreakMin   *string
	longBreakMin    *string
	sessionsBefore  *string
	waterInterval   *string
	servingMl       *string
	soundEnabled    *bool
	telegramEnabled *bool
}

func newSettingsModel(s *store.Store, sched *reminder.Scheduler) settingsModel {
	w, hc, a := "", "", ""
	wm, sb, lb, sc := "", "", "", ""
	wi, sv := "", ""
	snd, tg := false, false
	return settingsModel{
		store:           s,
		sched:           sched,
		weight:          &w,
		heightCm:        &hc,
		activity:        &a,
		workMin:         &wm,
		shortBreakMin:   &sb,
		longBreakMin:    &lb,
		sessionsBefore:  &sc,
		waterInterval:   &wi,
		servingMl:       &sv,
		soundEnabled:    &snd,
		telegramEnabled: &tg,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	*s.weight = s.getVal("weight_kg", "70")
	*s.heightCm = s.getVal("height_cm", "170")
	*s.activity = s.getVal("activity_level", "moderate")
	*s.workMin = secsToMin(s.getVal("work_duration", "1500"))
	*s.shortBreakMin = secsToMin(s.getVal("short_break", "300"))
	*s.longBreakMin = secsToMin(s.getVal("long_break", "900"))
	*s.sessionsBefore = s.getVal("sessions_before_long_break", "4")
	*s.waterInterval = secsToMin(s.getVal("water_interval", "7200"))
	*s.servingMl = s.getVal("serving_ml", "250")
	*s.soundEnabled = s.getVal("sound_enabled", "1") == "1"
	*s.telegramEnabled = s.getVal("telegram_enabled", "0") == "1"

	activityOpts := make([]huh.Option[string], 0, len(health.ActivityLevels()))
	for _, lvl := range health.ActivityLevels() {
		activityOpts = append(activityOpts, huh.NewOption(string(lvl), string(lvl)))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Weight (kg)").Value(s.weight),
			huh.NewInput().Title("Height (cm)").Value(s.heightCm),
			huh.NewSelect[string]().Title("Activity level").
				Options(activityOpts...).Value(s.activity),
		).Title("Profile"),
		huh.NewGroup(
			huh.NewInput().Title("Water reminder interval (min)").Value(s.waterInterval),
			huh.NewInput().Title("Serving size (ml)").Value(s.servingMl),
		).Title("Hydration"),
		huh.NewGroup(
			huh.NewInput().Title("Work session (min)").Value(s.workMin),
			huh.NewInput().Title("Short break (min)").Value(s.shortBreakMin),
			huh.NewInput().Title("Long break (min)").Value(s.longBreakMin),
			huh.NewInput().Title("Sessions before long break").Value(s.sessionsBefore),
		).Title("Work & Breaks"),
		huh.NewGroup(
			huh.NewConfirm().Title("Sound").Value(s.soundEnabled),
			huh.NewConfirm().Title("Telegram notifications").Value(s.telegramEnabled),
		).Title("Notifications"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		status := s.saveSettings()
		return s, tea.Batch(s.refresh(), func() tea.Msg { return status })
	}

	return s, cmd
}

// saveSettings persists the form values and applies them to the running
// scheduler so the new target and cadence take effect without a restart.
func (s settingsModel) saveSettings() statusMsg {
	s.store.SetSetting("weight_kg", *s.weight)
	s.store.SetSetting("height_cm", *s.heightCm)
	s.store.SetSetting("activity_level", *s.activity)
	s.store.SetSetting("work_duration", minToSecs(*s.workMin))
	s.store.SetSetting("short_break", minToSecs(*s.shortBreakMin))
	s.store.SetSetting("long_break", minToSecs(*s.longBreakMin))
	s.store.SetSetting("sessions_before_long_break", *s.sessionsBefore)
	s.store.SetSetting("water_interval", minToSecs(*s.waterInterval))
	s.store.SetSetting("serving_ml", *s.servingMl)
	s.store.SetSetting("sound_enabled", boolVal(*s.soundEnabled))
	s.store.SetSetting("telegram_enabled", boolVal(*s.telegramEnabled))

	weight, err := strconv.ParseFloat(*s.weight, 64)
	if err != nil {
		return statusMsg{text: "Invalid weight", isError: true}
	}
	level, err := health.ParseActivityLevel(*s.activity)
	if err != nil {
		return statusMsg{text: "Invalid activity level", isError: true}
	}
	target, err := s.sched.UpdateProfile(weight, level)
	if err != nil {
		return statusMsg{text: "Invalid profile: " + err.Error(), isError: true}
	}

	cfg := reminder.DefaultConfig()
	cfg.BaseWaterInterval = minDuration(*s.waterInterval, cfg.BaseWaterInterval)
	if n, err := strconv.Atoi(*s.servingMl); err == nil && n > 0 {
		cfg.ServingMl = n
	}
	cfg.Breaks.WorkDuration = minDuration(*s.workMin, cfg.Breaks.WorkDuration)
	cfg.Breaks.ShortBreak = minDuration(*s.shortBreakMin, cfg.Breaks.ShortBreak)
	cfg.Breaks.LongBreak = minDuration(*s.longBreakMin, cfg.Breaks.LongBreak)
	if n, err := strconv.Atoi(*s.sessionsBefore); err == nil && n > 0 {
		cfg.Breaks.SessionsBeforeLong = n
	}
	// The threshold has no form field; keep the persisted value rather
	// than the default.
	if n, err := strconv.Atoi(s.getVal("long_break_threshold", "7200")); err == nil && n > 0 {
		cfg.Breaks.LongBreakThreshold = time.Duration(n) * time.Second
	}
	s.sched.UpdateConfig(cfg)

	return statusMsg{text: fmt.Sprintf("Saved. Daily target is now %s", formatMl(target))}
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(28).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, s.renderBMI())
	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s settingsModel) renderBMI() string {
	weight, err1 := strconv.ParseFloat(s.getVal("weight_kg", "70"), 64)
	height, err2 := strconv.ParseFloat(s.getVal("height_cm", "170"), 64)
	if err1 != nil || err2 != nil {
		return ""
	}
	bmi, category, err := health.BMI(weight, height)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(28).Render("BMI"),
		accentStyle.Render(fmt.Sprintf("%.1f (%s)", bmi, category)))
}

func formatSettingValue(k, v string) string {
	switch k {
	case "work_duration", "short_break", "long_break", "water_interval", "long_break_threshold":
		if secs, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d min", secs/60)
		}
	case "sound_enabled", "telegram_enabled":
		if v == "1" {
			return "on"
		}
		return "off"
	case "weight_kg":
		return v + " kg"
	case "height_cm":
		return v + " cm"
	case "serving_ml":
		return v + " ml"
	}
	return v
}

func secsToMin(s string) string {
	if secs, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(secs / 60)
	}
	return s
}

func minToSecs(s string) string {
	if mins, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(mins * 60)
	}
	return s
}

func minDuration(s string, fallback time.Duration) time.Duration {
	if mins, err := strconv.Atoi(s); err == nil && mins > 0 {
		return time.Duration(mins) * time.Minute
	}
	return fallback
}

func boolVal(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
