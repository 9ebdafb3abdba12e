package config

import (
	"testing"
	"time"

	"github.com/sadopc/vital/internal/health"
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

func TestLoadDefaults(t *testing.T) {
	s := newTestStore(t)

	cfg := Load(s)

	if cfg.Profile.WeightKg != 70 || cfg.Profile.Activity != health.ActivityModerate {
		t.Errorf("profile = %+v", cfg.Profile)
	}
	if cfg.HeightCm != 170 {
		t.Errorf("height = %v", cfg.HeightCm)
	}
	if cfg.Reminders.BaseWaterInterval != 2*time.Hour {
		t.Errorf("water interval = %v", cfg.Reminders.BaseWaterInterval)
	}
	if cfg.Reminders.ServingMl != 250 {
		t.Errorf("serving = %d", cfg.Reminders.ServingMl)
	}
	if cfg.Reminders.Breaks.WorkDuration != 25*time.Minute {
		t.Errorf("work duration = %v", cfg.Reminders.Breaks.WorkDuration)
	}
	if cfg.Reminders.Breaks.LongBreakThreshold != 2*time.Hour {
		t.Errorf("threshold = %v", cfg.Reminders.Breaks.LongBreakThreshold)
	}
	if !cfg.SoundEnabled || cfg.TelegramEnabled {
		t.Errorf("toggles = sound %v, telegram %v", cfg.SoundEnabled, cfg.TelegramEnabled)
	}
}

func TestLoadOverrides(t *testing.T) {
	s := newTestStore(t)

	s.SetSetting("weight_kg", "85.5")
	s.SetSetting("activity_level", "very_active")
	s.SetSetting("water_interval", "3600")
	s.SetSetting("short_break", "600")
	s.SetSetting("telegram_enabled", "1")

	cfg := Load(s)

	if cfg.Profile.WeightKg != 85.5 {
		t.Errorf("weight = %v", cfg.Profile.WeightKg)
	}
	if cfg.Profile.Activity != health.ActivityVeryActive {
		t.Errorf("activity = %v", cfg.Profile.Activity)
	}
	if cfg.Reminders.BaseWaterInterval != time.Hour {
		t.Errorf("water interval = %v", cfg.Reminders.BaseWaterInterval)
	}
	if cfg.Reminders.Breaks.ShortBreak != 10*time.Minute {
		t.Errorf("short break = %v", cfg.Reminders.Breaks.ShortBreak)
	}
	if !cfg.TelegramEnabled {
		t.Error("telegram toggle not read")
	}
}

func TestLoadMalformedFallsBack(t *testing.T) {
	s := newTestStore(t)

	s.SetSetting("weight_kg", "heavy")
	s.SetSetting("activity_level", "superhuman")
	s.SetSetting("work_duration", "soon")

	cfg := Load(s)

	if cfg.Profile.WeightKg != 70 {
		t.Errorf("weight fallback = %v", cfg.Profile.WeightKg)
	}
	if cfg.Profile.Activity != health.ActivityModerate {
		t.Errorf("activity fallback = %v", cfg.Profile.Activity)
	}
	if cfg.Reminders.Breaks.WorkDuration != 25*time.Minute {
		t.Errorf("work duration fallback = %v", cfg.Reminders.Breaks.WorkDuration)
	}
}
