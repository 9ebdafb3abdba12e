package notify

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sadopc/vital/internal/reminder"
	"github.com/sadopc/vital/internal/store"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// collector is a thread-safe recording sink.
type collector struct {
	mu     sync.Mutex
	events []reminder.Event
}

func (c *collector) Handle(ev reminder.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *collector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

// ============================================================
// Store sink
// ============================================================

func TestStoreSinkPersistsEvents(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	sink := NewStoreSink(s, discard())
	ev := reminder.NewEvent(reminder.EventWaterIntake, time.Now(),
		"Consumed 250ml of water",
		map[string]string{reminder.PayloadAmountMl: "250"})
	sink.Handle(ev)

	records, err := s.ListEvents(store.EventFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].ID != ev.ID || records[0].Kind != string(ev.Kind) {
		t.Errorf("record = %+v", records[0])
	}
	if records[0].Payload[reminder.PayloadAmountMl] != "250" {
		t.Errorf("payload = %v", records[0].Payload)
	}
}

// ============================================================
// Fan-out
// ============================================================

func TestMultiDeliversToAll(t *testing.T) {
	a, b := &collector{}, &collector{}
	m := Multi{a, b}

	m.Handle(reminder.NewEvent(reminder.EventWaterReminder, time.Now(), "drink", nil))

	if a.len() != 1 || b.len() != 1 {
		t.Errorf("delivery counts = %d, %d, want 1, 1", a.len(), b.len())
	}
}

func TestAsyncDeliversAndDrainsOnClose(t *testing.T) {
	inner := &collector{}
	async := NewAsync(inner, 8, discard())

	for i := 0; i < 5; i++ {
		async.Handle(reminder.NewEvent(reminder.EventWaterIntake, time.Now(), "x", nil))
	}
	async.Close()

	if got := inner.len(); got != 5 {
		t.Errorf("delivered %d events, want 5", got)
	}

	// Close is idempotent
	async.Close()
}

func TestAsyncDropsWhenFull(t *testing.T) {
	blocked := make(chan struct{})
	slow := reminder.SinkFunc(func(reminder.Event) { <-blocked })
	async := NewAsync(slow, 1, discard())

	// First event occupies the worker, second fills the queue, the rest
	// must be dropped without blocking this goroutine.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			async.Handle(reminder.NewEvent(reminder.EventWaterReminder, time.Now(), "x", nil))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Handle blocked on a full queue")
	}
	close(blocked)
	async.Close()
}

// ============================================================
// Telegram
// ============================================================

func TestTelegramConfigured(t *testing.T) {
	if NewTelegram("", "", discard()).Configured() {
		t.Error("empty credentials reported configured")
	}
	if NewTelegram("token", "", discard()).Configured() {
		t.Error("missing chat id reported configured")
	}
	if !NewTelegram("token", "123", discard()).Configured() {
		t.Error("full credentials reported unconfigured")
	}
}

func TestTelegramSendsMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := NewTelegram("secret-token", "4242", discard())
	tg.baseURL = srv.URL

	tg.Handle(reminder.NewEvent(reminder.EventWaterReminder, time.Now(),
		"Time to drink 250ml of water",
		map[string]string{reminder.PayloadProgressPct: "40.0"}))

	if gotPath != "/botsecret-token/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["chat_id"] != "4242" {
		t.Errorf("chat_id = %q", gotBody["chat_id"])
	}
	if gotBody["parse_mode"] != "HTML" {
		t.Errorf("parse_mode = %q", gotBody["parse_mode"])
	}
	if !strings.Contains(gotBody["text"], "Time to drink 250ml of water") {
		t.Errorf("text = %q", gotBody["text"])
	}
	if !strings.Contains(gotBody["text"], "40.0%") {
		t.Errorf("text missing progress: %q", gotBody["text"])
	}
}

func TestTelegramSkipsWhenUnconfigured(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer srv.Close()

	tg := NewTelegram("", "", discard())
	tg.baseURL = srv.URL
	tg.Handle(reminder.NewEvent(reminder.EventWaterReminder, time.Now(), "x", nil))

	if called {
		t.Error("unconfigured notifier made an HTTP call")
	}
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		ev   reminder.Event
		want string
	}{
		{
			"water reminder",
			reminder.NewEvent(reminder.EventWaterReminder, time.Now(), "Time to drink 250ml of water",
				map[string]string{reminder.PayloadProgressPct: "62.5"}),
			"62.5%",
		},
		{
			"break reminder",
			reminder.NewEvent(reminder.EventBreakReminder, time.Now(), "Short break reminder (5 min)",
				map[string]string{reminder.PayloadSessions: "3"}),
			"Sessions completed",
		},
		{
			"achievement",
			reminder.NewEvent(reminder.EventAchievement, time.Now(), "Daily water target reached", nil),
			"Achievement",
		},
		{
			"other kinds pass through",
			reminder.NewEvent(reminder.EventSessionStart, time.Now(), "Work session started", nil),
			"Work session started",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMessage(tt.ev)
			if !strings.Contains(got, tt.want) {
				t.Errorf("formatMessage = %q, want substring %q", got, tt.want)
			}
		})
	}
}
