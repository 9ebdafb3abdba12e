package reminder

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/sadopc/vital/internal/health"
)

// Config holds the scheduler's reminder settings.
type Config struct {
	// BaseWaterInterval is the hydration cadence before adaptive adjustment.
	BaseWaterInterval time.Duration
	// ServingMl caps the suggested amount per water reminder.
	ServingMl int
	// Breaks drives the break policy.
	Breaks health.BreakConfig
	// WakingStartHour and WakingHours define the window used to judge
	// whether intake is on pace for the day.
	WakingStartHour int
	WakingHours     int
}

// DefaultConfig returns a 2h water cadence with 250ml servings over a
// 16h waking day starting at 07:00.
func DefaultConfig() Config {
	return Config{
		BaseWaterInterval: 2 * time.Hour,
		ServingMl:         250,
		Breaks:            health.DefaultBreakConfig(),
		WakingStartHour:   7,
		WakingHours:       16,
	}
}

// Status is a read-only snapshot of scheduler state for the UI.
type Status struct {
	ConsumedMl        int
	TargetMl          int
	RemainingMl       int
	ProgressRatio     float64
	SessionActive     bool
	SessionElapsed    time.Duration
	ContinuousWork    time.Duration
	CompletedSessions int
	PendingBreak      health.BreakKind
	NextWaterIn       time.Duration
}

// Scheduler turns time passage and tracker state into emitted events.
// All mutable state is guarded by one mutex so user commands serialize
// against tick processing.
type Scheduler struct {
	mu     sync.Mutex
	clock  Clock
	sink   Sink
	logger *slog.Logger

	cfg     Config
	profile health.Profile
	intake  *health.IntakeTracker
	session *health.SessionTracker

	lastTick     time.Time
	lastWaterAt  time.Time
	pendingBreak health.BreakDecision
}

// New builds a scheduler for the given profile. The hydration target is
// derived immediately, so an invalid profile fails here rather than on the
// first tick.
func New(profile health.Profile, cfg Config, clock Clock, sink Sink, logger *slog.Logger) (*Scheduler, error) {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseWaterInterval <= 0 {
		cfg.BaseWaterInterval = 2 * time.Hour
	}
	if cfg.ServingMl <= 0 {
		cfg.ServingMl = 250
	}
	if cfg.WakingHours <= 0 {
		cfg.WakingStartHour = 7
		cfg.WakingHours = 16
	}

	target, err := profile.Target()
	if err != nil {
		return nil, fmt.Errorf("derive hydration target: %w", err)
	}

	now := clock.Now()
	intake, err := health.NewIntakeTracker(target, health.DayOf(now))
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		clock:       clock,
		sink:        sink,
		logger:      logger,
		cfg:         cfg,
		profile:     profile,
		intake:      intake,
		session:     health.NewSessionTracker(),
		lastWaterAt: now,
	}, nil
}

// OnTick advances the scheduler to now. It performs only in-memory work and
// synchronous sink calls; any internal panic is recovered and logged so the
// tick loop keeps running.
func (s *Scheduler) OnTick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduler tick recovered", "panic", r)
		}
	}()

	if s.intake.Rollover(health.DayOf(now)) {
		s.session.ResetCounts()
		s.lastWaterAt = now
	}

	var delta time.Duration
	if !s.lastTick.IsZero() && now.After(s.lastTick) {
		delta = now.Sub(s.lastTick)
	}
	s.lastTick = now
	s.session.Tick(delta)

	s.checkWaterLocked(now)
	s.checkBreakLocked(now)

	if s.intake.JustReachedTarget() {
		s.emitLocked(NewEvent(EventAchievement, now,
			"Daily water target reached",
			map[string]string{
				PayloadAmountMl:    strconv.Itoa(s.intake.ConsumedMl()),
				PayloadProgressPct: formatPct(s.intake.ProgressRatio()),
			}))
	}
}

func (s *Scheduler) checkWaterLocked(now time.Time) {
	interval := s.effectiveWaterIntervalLocked(now)
	if now.Sub(s.lastWaterAt) < interval {
		return
	}
	s.lastWaterAt = now

	amount := s.intake.RemainingMl()
	if amount > s.cfg.ServingMl {
		amount = s.cfg.ServingMl
	}
	description := fmt.Sprintf("Time to drink %dml of water", amount)
	if amount == 0 {
		description = "Target met, keep sipping if thirsty"
	}
	s.emitLocked(NewEvent(EventWaterReminder, now, description,
		map[string]string{
			PayloadAmountMl:    strconv.Itoa(amount),
			PayloadProgressPct: formatPct(s.intake.ProgressRatio()),
		}))
}

func (s *Scheduler) checkBreakLocked(now time.Time) {
	if s.pendingBreak.Kind != health.BreakNone {
		// Held until TakeBreak or DismissBreak; no duplicate reminders.
		return
	}
	decision := health.DecideBreak(s.session.ContinuousWork(), s.session.CompletedSessions(), s.cfg.Breaks)
	if decision.Kind == health.BreakNone {
		return
	}
	s.pendingBreak = decision

	label := "Short break"
	if decision.Kind == health.BreakLong {
		label = "Long break"
	}
	s.emitLocked(NewEvent(EventBreakReminder, now,
		fmt.Sprintf("%s reminder (%d min)", label, int(decision.Duration.Minutes())),
		map[string]string{
			PayloadBreakKind:   string(decision.Kind),
			PayloadDurationSec: strconv.Itoa(int(decision.Duration.Seconds())),
			PayloadSessions:    strconv.Itoa(s.session.CompletedSessions()),
		}))
}

// effectiveWaterIntervalLocked adapts the base cadence to intake progress:
// behind pace shortens the interval, a met target stretches it. The result
// is clamped and always positive.
func (s *Scheduler) effectiveWaterIntervalLocked(now time.Time) time.Duration {
	factor := adjustmentFactor(s.intake.ProgressRatio(), s.dayFraction(now))
	interval := time.Duration(float64(s.cfg.BaseWaterInterval) * factor)
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}

// adjustmentFactor maps (progress, elapsed day fraction) to an interval
// multiplier. Monotonic in progress. While the target is unmet the pace
// ratio is clamped to [0.5, 1.25]; once it is met the factor steps
// straight to 1.5, past the on-pace cap, so the cadence jumps at
// progress 1 rather than easing through it.
func adjustmentFactor(progress, dayFraction float64) float64 {
	if progress >= 1 {
		return 1.5
	}
	if dayFraction <= 0 {
		return 1
	}
	factor := progress / dayFraction
	if factor < 0.5 {
		return 0.5
	}
	if factor > 1.25 {
		return 1.25
	}
	return factor
}

// dayFraction reports how far into the waking window now is, in [0, 1].
func (s *Scheduler) dayFraction(now time.Time) float64 {
	start := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.WakingStartHour, 0, 0, 0, now.Location())
	fraction := now.Sub(start).Hours() / float64(s.cfg.WakingHours)
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// StartSession begins a work session.
func (s *Scheduler) StartSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	if err := s.session.Start(now); err != nil {
		return err
	}
	s.emitLocked(NewEvent(EventSessionStart, now, "Work session started", nil))
	return nil
}

// EndSession finalizes the running work session.
func (s *Scheduler) EndSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	elapsed := s.session.Elapsed()
	if err := s.session.End(); err != nil {
		return err
	}
	s.emitLocked(NewEvent(EventSessionEnd, s.clock.Now(),
		fmt.Sprintf("Work session ended after %s", elapsed.Round(time.Second)),
		map[string]string{
			PayloadDurationSec: strconv.Itoa(int(elapsed.Seconds())),
		}))
	return nil
}

// LogIntake records a drink and emits the intake event.
func (s *Scheduler) LogIntake(amountMl int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.intake.LogIntake(amountMl); err != nil {
		return err
	}
	s.emitLocked(NewEvent(EventWaterIntake, s.clock.Now(),
		fmt.Sprintf("Consumed %dml of water", amountMl),
		map[string]string{
			PayloadAmountMl:    strconv.Itoa(amountMl),
			PayloadProgressPct: formatPct(s.intake.ProgressRatio()),
		}))
	return nil
}

// TakeBreak acknowledges the pending break reminder (or takes one
// opportunistically) and re-arms break reminders.
func (s *Scheduler) TakeBreak() {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken := s.pendingBreak
	s.pendingBreak = health.BreakDecision{}
	s.session.TakeBreak()

	payload := map[string]string{
		PayloadSessions: strconv.Itoa(s.session.CompletedSessions()),
	}
	if taken.Kind != health.BreakNone {
		payload[PayloadBreakKind] = string(taken.Kind)
		payload[PayloadDurationSec] = strconv.Itoa(int(taken.Duration.Seconds()))
	}
	s.emitLocked(NewEvent(EventBreakTaken, s.clock.Now(), "Break taken", payload))
}

// DismissBreak drops the pending break reminder without crediting a break.
// The next due break may be emitted again on a later tick.
func (s *Scheduler) DismissBreak() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingBreak = health.BreakDecision{}
}

// ResetSessions clears the completed-session counter.
func (s *Scheduler) ResetSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.ResetCounts()
}

// UpdateProfile replaces the user profile and recomputes the hydration
// target. Today's consumed total is kept.
func (s *Scheduler) UpdateProfile(weightKg float64, level health.ActivityLevel) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, err := health.ComputeTarget(weightKg, level)
	if err != nil {
		return 0, err
	}
	if err := s.intake.SetTarget(target); err != nil {
		return 0, err
	}
	s.profile = health.Profile{WeightKg: weightKg, Activity: level}
	return target, nil
}

// UpdateConfig swaps reminder settings at runtime.
func (s *Scheduler) UpdateConfig(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.BaseWaterInterval <= 0 {
		cfg.BaseWaterInterval = s.cfg.BaseWaterInterval
	}
	if cfg.ServingMl <= 0 {
		cfg.ServingMl = s.cfg.ServingMl
	}
	if cfg.WakingHours <= 0 {
		cfg.WakingStartHour = s.cfg.WakingStartHour
		cfg.WakingHours = s.cfg.WakingHours
	}
	s.cfg = cfg
}

// RestoreIntake seeds today's consumed total from persisted history.
func (s *Scheduler) RestoreIntake(consumedMl int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intake.Restore(consumedMl)
}

// Profile returns the current user profile.
func (s *Scheduler) Profile() health.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Status snapshots the scheduler for display.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	nextWater := s.effectiveWaterIntervalLocked(now) - now.Sub(s.lastWaterAt)
	if nextWater < 0 {
		nextWater = 0
	}

	return Status{
		ConsumedMl:        s.intake.ConsumedMl(),
		TargetMl:          s.intake.TargetMl(),
		RemainingMl:       s.intake.RemainingMl(),
		ProgressRatio:     s.intake.ProgressRatio(),
		SessionActive:     s.session.Active(),
		SessionElapsed:    s.session.Elapsed(),
		ContinuousWork:    s.session.ContinuousWork(),
		CompletedSessions: s.session.CompletedSessions(),
		PendingBreak:      s.pendingBreak.Kind,
		NextWaterIn:       nextWater,
	}
}

func (s *Scheduler) emitLocked(ev Event) {
	if s.sink == nil {
		return
	}
	s.sink.Handle(ev)
}

func formatPct(ratio float64) string {
	return strconv.FormatFloat(ratio*100, 'f', 1, 64)
}
