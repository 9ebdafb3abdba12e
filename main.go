package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sadopc/vital/internal/config"
	"github.com/sadopc/vital/internal/export"
	"github.com/sadopc/vital/internal/health"
	"github.com/sadopc/vital/internal/notify"
	"github.com/sadopc/vital/internal/reminder"
	"github.com/sadopc/vital/internal/store"
	"github.com/sadopc/vital/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vital",
		Short:         "Hydration and work-break companion",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
	}

	root.AddCommand(newLogCmd())
	root.AddCommand(newSummaryCmd())
	root.AddCommand(newExportCmd())
	return root
}

// appEnv is everything the commands share: the open store, loaded
// settings, and a logger.
type appEnv struct {
	store    *store.Store
	settings config.Settings
	logger   *slog.Logger
}

func loadApp() (*appEnv, error) {
	// Optional; the .env file only carries Telegram credentials.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return nil, err
	}
	s, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &appEnv{
		store:    s,
		settings: config.Load(s),
		logger:   logger,
	}, nil
}

func runTUI() error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.store.Close()

	events := make(tui.ChannelSink, 32)

	sinks := notify.Multi{
		notify.NewStoreSink(app.store, app.logger),
		events,
	}

	var async *notify.Async
	if app.settings.TelegramEnabled {
		tg := notify.NewTelegram(os.Getenv("TELEGRAM_BOT_TOKEN"), os.Getenv("TELEGRAM_CHAT_ID"), app.logger)
		if tg.Configured() {
			async = notify.NewAsync(tg, 16, app.logger)
			sinks = append(sinks, async)
		} else {
			app.logger.Warn("telegram enabled but TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID unset")
		}
	}

	sched, err := reminder.New(app.settings.Profile, app.settings.Reminders, nil, sinks, app.logger)
	if err != nil {
		return err
	}

	// Pick up anything already drunk today.
	today := health.DayOf(time.Now())
	if total, err := app.store.IntakeTotal(today); err == nil && total > 0 {
		sched.RestoreIntake(total)
	}

	p := tea.NewProgram(tui.NewApp(app.store, sched, app.settings, events), tea.WithAltScreen())
	_, err = p.Run()
	if async != nil {
		async.Close()
	}
	return err
}

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <ml>",
		Short: "Log a drink without opening the UI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil || amount <= 0 {
				return fmt.Errorf("amount must be a positive whole number of ml, got %q", args[0])
			}

			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.store.Close()

			sched, err := reminder.New(app.settings.Profile, app.settings.Reminders, nil,
				notify.NewStoreSink(app.store, app.logger), app.logger)
			if err != nil {
				return err
			}

			now := time.Now()
			today := health.DayOf(now)
			if total, err := app.store.IntakeTotal(today); err == nil && total > 0 {
				sched.RestoreIntake(total)
			}

			if err := sched.LogIntake(amount); err != nil {
				return err
			}
			if _, err := app.store.LogIntake(amount, now); err != nil {
				return err
			}

			st := sched.Status()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %dml. Today: %d/%dml (%.0f%%)\n",
				amount, st.ConsumedMl, st.TargetMl, st.ProgressRatio*100)
			return nil
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print today's hydration summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.store.Close()

			target, err := app.settings.Profile.Target()
			if err != nil {
				return err
			}

			today := health.DayOf(time.Now())
			total, err := app.store.IntakeTotal(today)
			if err != nil {
				return err
			}
			counts, err := app.store.CountEventsByKind(today)
			if err != nil {
				return err
			}

			pct := 0.0
			if target > 0 {
				pct = float64(total) / float64(target) * 100
				if pct > 100 {
					pct = 100
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Water:    %d/%dml (%.0f%%)\n", total, target, pct)
			fmt.Fprintf(out, "Drinks:   %d\n", counts[string(reminder.EventWaterIntake)])
			fmt.Fprintf(out, "Sessions: %d started, %d ended\n",
				counts[string(reminder.EventSessionStart)], counts[string(reminder.EventSessionEnd)])
			fmt.Fprintf(out, "Breaks:   %d taken\n", counts[string(reminder.EventBreakTaken)])
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the event log to CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.store.Close()

			events, err := app.store.ListEvents(store.EventFilter{})
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = fmt.Sprintf("vital-export-%s.%s", time.Now().Format("2006-01-02"), format)
			}

			switch format {
			case "csv":
				err = export.ToCSV(events, path)
			case "json":
				err = export.ToJSON(events, path)
			default:
				return fmt.Errorf("unknown format %q, want csv or json", format)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", len(events), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "export format: csv|json")
	cmd.Flags().StringVar(&out, "out", "", "output path (default vital-export-<date>.<ext>)")
	return cmd
}
