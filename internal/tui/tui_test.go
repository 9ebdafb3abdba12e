package tui

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/vital/internal/config"
	"github.com/sadopc/vital/internal/health"
	"github.com/sadopc/vital/internal/reminder"
	"github.com/sadopc/vital/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestApp(t *testing.T) App {
	t.Helper()
	s := newTestStore(t)
	cfg := config.Load(s)

	events := make(ChannelSink, 8)
	sched, err := reminder.New(cfg.Profile, cfg.Reminders, nil, events, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	return NewApp(s, sched, cfg, events)
}

// ============================================================
// Event channel
// ============================================================

func TestChannelSinkNeverBlocks(t *testing.T) {
	sink := make(ChannelSink, 1)

	ev := reminder.NewEvent(reminder.EventWaterReminder, time.Now(), "drink", nil)
	sink.Handle(ev)
	// Channel is full now; further sends must drop instead of blocking.
	done := make(chan struct{})
	go func() {
		sink.Handle(ev)
		sink.Handle(ev)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Handle blocked on a full channel")
	}

	if got := len(sink); got != 1 {
		t.Fatalf("buffered %d events, want 1", got)
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 4 {
		t.Fatalf("expected 4 view names, got %d", len(viewNames))
	}
	expected := []string{"Dashboard", "Reports", "Log", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewDashboard != 0 || viewReports != 1 || viewLog != 2 || viewSettings != 3 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{time.Minute, "00:01:00"},
		{time.Hour, "01:00:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
	}
	for _, tt := range tests {
		got := formatDuration(tt.d)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{time.Second, "00:01"},
		{25 * time.Minute, "25:00"},
		{5*time.Minute + 30*time.Second, "05:30"},
		{-time.Second, "00:00"}, // negative should clamp to 0
	}
	for _, tt := range tests {
		got := formatClock(tt.d)
		if got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatMl(t *testing.T) {
	tests := []struct {
		ml   int
		want string
	}{
		{0, "0ml"},
		{250, "250ml"},
		{999, "999ml"},
		{1000, "1.0L"},
		{2800, "2.8L"},
	}
	for _, tt := range tests {
		got := formatMl(tt.ml)
		if got != tt.want {
			t.Errorf("formatMl(%d) = %q, want %q", tt.ml, got, tt.want)
		}
	}
}

// ============================================================
// Settings helpers
// ============================================================

func TestSecsToMin(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1500", "25"},
		{"300", "5"},
		{"0", "0"},
		{"invalid", "invalid"},
	}
	for _, tt := range tests {
		got := secsToMin(tt.in)
		if got != tt.want {
			t.Errorf("secsToMin(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMinToSecs(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"25", "1500"},
		{"5", "300"},
		{"0", "0"},
		{"invalid", "invalid"},
	}
	for _, tt := range tests {
		got := minToSecs(tt.in)
		if got != tt.want {
			t.Errorf("minToSecs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMinDuration(t *testing.T) {
	if got := minDuration("25", time.Hour); got != 25*time.Minute {
		t.Errorf("minDuration(25) = %v", got)
	}
	if got := minDuration("0", time.Hour); got != time.Hour {
		t.Errorf("minDuration(0) should fall back, got %v", got)
	}
	if got := minDuration("soon", time.Hour); got != time.Hour {
		t.Errorf("minDuration(soon) should fall back, got %v", got)
	}
}

func TestFormatSettingValue(t *testing.T) {
	tests := []struct {
		key, val, want string
	}{
		{"work_duration", "1500", "25 min"},
		{"short_break", "300", "5 min"},
		{"water_interval", "7200", "120 min"},
		{"sound_enabled", "1", "on"},
		{"telegram_enabled", "0", "off"},
		{"weight_kg", "70", "70 kg"},
		{"height_cm", "170", "170 cm"},
		{"serving_ml", "250", "250 ml"},
		{"activity_level", "moderate", "moderate"},
		{"work_duration", "invalid", "invalid"},
	}
	for _, tt := range tests {
		got := formatSettingValue(tt.key, tt.val)
		if got != tt.want {
			t.Errorf("formatSettingValue(%q, %q) = %q, want %q", tt.key, tt.val, got, tt.want)
		}
	}
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func TestSaveSettingsKeepsLongBreakThreshold(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("long_break_threshold", "3600"); err != nil {
		t.Fatal(err)
	}

	cfg := config.Load(s)
	clock := &fixedClock{now: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)}
	var events []reminder.Event
	sink := reminder.SinkFunc(func(ev reminder.Event) { events = append(events, ev) })
	sched, err := reminder.New(cfg.Profile, cfg.Reminders, clock, sink, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}

	m := newSettingsModel(s, sched)
	m, _ = m.showForm()
	m.saveSettings()

	// One hour of continuous work must still earn a long break under the
	// persisted one-hour threshold.
	if err := sched.StartSession(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 61; i++ {
		clock.now = clock.now.Add(time.Minute)
		sched.OnTick(clock.now)
		sched.DismissBreak()
	}

	long := false
	for _, ev := range events {
		if ev.Kind == reminder.EventBreakReminder &&
			ev.Payload[reminder.PayloadBreakKind] == string(health.BreakLong) {
			long = true
		}
	}
	if !long {
		t.Fatal("no long break reminder after an hour of continuous work; save dropped the stored threshold")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app := newTestApp(t)

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.isCapturingInput() {
		t.Fatal("no input capture should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(App)

	// All views render without panic
	views := []viewState{viewDashboard, viewReports, viewLog, viewSettings}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app := newTestApp(t)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	app := newTestApp(t)
	// Width 0 means not yet sized
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app := newTestApp(t)
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppDescribeEventBell(t *testing.T) {
	app := newTestApp(t)
	app.sound = true

	ev := reminder.NewEvent(reminder.EventWaterReminder, time.Now(), "Time to drink 250ml of water", nil)
	if got := app.describeEvent(ev); !strings.Contains(got, "\a") {
		t.Error("reminder with sound enabled should ring the bell")
	}

	app.sound = false
	if got := app.describeEvent(ev); strings.Contains(got, "\a") {
		t.Error("bell rung with sound disabled")
	}

	// Non-reminder events never ring, sound or not.
	app.sound = true
	intake := reminder.NewEvent(reminder.EventWaterIntake, time.Now(), "Consumed 250ml of water", nil)
	if got := app.describeEvent(intake); strings.Contains(got, "\a") {
		t.Error("bell rung for a non-reminder event")
	}
}

// ============================================================
// Log view
// ============================================================

func TestKindDot(t *testing.T) {
	kinds := []string{
		string(reminder.EventWaterReminder),
		string(reminder.EventBreakReminder),
		string(reminder.EventAchievement),
		string(reminder.EventSessionStart),
		"unknown_kind",
	}
	for _, kind := range kinds {
		if got := kindDot(kind); got == "" {
			t.Errorf("kindDot(%q) rendered empty", kind)
		}
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}
