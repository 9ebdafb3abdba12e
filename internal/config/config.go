// Package config assembles runtime settings from the persisted settings
// table into the typed values the core consumes.
package config

import (
	"time"

	"github.com/sadopc/vital/internal/health"
	"github.com/sadopc/vital/internal/reminder"
	"github.com/sadopc/vital/internal/store"
)

// Settings is everything read at startup.
type Settings struct {
	Profile         health.Profile
	HeightCm        float64
	Reminders       reminder.Config
	SoundEnabled    bool
	TelegramEnabled bool
}

// Load reads settings from the store, substituting defaults for anything
// missing or malformed. An unknown persisted activity level falls back to
// moderate here; strict validation applies to user input, not to already
// stored values.
func Load(s *store.Store) Settings {
	activity := health.ActivityModerate
	if raw, err := s.GetSetting("activity_level"); err == nil {
		if parsed, err := health.ParseActivityLevel(raw); err == nil {
			activity = parsed
		}
	}

	breaks := health.BreakConfig{
		WorkDuration:       secs(s.SettingInt("work_duration", 1500)),
		ShortBreak:         secs(s.SettingInt("short_break", 300)),
		LongBreak:          secs(s.SettingInt("long_break", 900)),
		SessionsBeforeLong: s.SettingInt("sessions_before_long_break", 4),
		LongBreakThreshold: secs(s.SettingInt("long_break_threshold", 7200)),
	}

	reminders := reminder.DefaultConfig()
	reminders.BaseWaterInterval = secs(s.SettingInt("water_interval", 7200))
	reminders.ServingMl = s.SettingInt("serving_ml", 250)
	reminders.Breaks = breaks

	return Settings{
		Profile: health.Profile{
			WeightKg: s.SettingFloat("weight_kg", 70),
			Activity: activity,
		},
		HeightCm:        s.SettingFloat("height_cm", 170),
		Reminders:       reminders,
		SoundEnabled:    s.SettingBool("sound_enabled", true),
		TelegramEnabled: s.SettingBool("telegram_enabled", false),
	}
}

func secs(n int) time.Duration {
	return time.Duration(n) * time.Second
}
