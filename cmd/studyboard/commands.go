package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyboard/internal/config"
	"github.com/sandeepkv93/studyboard/internal/logger"
	"github.com/sandeepkv93/studyboard/internal/model"
	studyprogress "github.com/sandeepkv93/studyboard/internal/progress"
	"github.com/sandeepkv93/studyboard/internal/scheduler"
	"github.com/sandeepkv93/studyboard/internal/storage"
	"github.com/sandeepkv93/studyboard/internal/store"
	"github.com/sandeepkv93/studyboard/internal/theme"
	"github.com/sandeepkv93/studyboard/internal/tracker"
	"github.com/sandeepkv93/studyboard/internal/update"
)

// app bundles what every subcommand needs. close releases the backend and
// flushes the log.
type app struct {
	cfg   config.RuntimeConfig
	log   *logger.Logger
	svc   *tracker.Service
	close func()
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "studyboard",
		Short:         "Terminal study planner with tasks, exams and focus sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			return runTUI(a)
		},
	}
	root.AddCommand(newExportCommand(), newImportCommand(), newStatusCommand())
	return root
}

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup of the current state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			dir, _ := cmd.Flags().GetString("out")
			if dir == "" {
				dir = a.cfg.BackupDir
			}
			path, err := a.svc.ExportFile(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backup written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().String("out", "", "Directory for the backup file (default: STUDYBOARD_BACKUP_DIR)")
	return cmd
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a JSON backup into the current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			patch, err := a.svc.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s: %s\n", args[0], patchKeys(patch))
			return nil
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print level, XP and what is due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			printStatus(cmd.OutOrStdout(), a.svc)
			return nil
		},
	}
}

func setup(ctx context.Context) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.LogFile != "" && cfg.LogFile != "stderr" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}

	kv, closeKV, err := openBackend(cfg)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	st, err := store.Open(ctx, kv, store.WithLogger(log))
	if err != nil {
		closeKV()
		_ = log.Sync()
		return nil, err
	}
	if loadErr := st.LoadError(); loadErr != nil {
		log.Warnw("started with empty state", "backend", string(cfg.Backend), "error", loadErr)
	}

	return &app{
		cfg: cfg,
		log: log,
		svc: tracker.New(st, tracker.WithLogger(log)),
		close: func() {
			closeKV()
			_ = log.Sync()
		},
	}, nil
}

func openBackend(cfg config.RuntimeConfig) (storage.KV, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), func() {}, nil
	case config.BackendFile:
		fs, err := storage.NewFileStore(cfg.StateDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		repo, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	}
}

func runTUI(a *app) error {
	opts := []update.Option{
		update.WithLogger(a.log),
		update.WithPrefersDark(theme.PrefersDark()),
		update.WithConfig(a.cfg),
	}
	if a.cfg.DesktopNotifications {
		opts = append(opts, update.WithNotifier(update.ExecDesktopNotifier{}))
	}
	if a.cfg.ExamAlerts {
		engine := scheduler.NewEngine(a.cfg.SchedulerBuffer)
		engine.Start()
		defer engine.Stop()
		opts = append(opts, update.WithScheduler(engine))
	}

	program := tea.NewProgram(update.NewModel(a.svc, opts...), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func printStatus(w io.Writer, svc *tracker.Service) {
	now := svc.Now()
	state := svc.State()
	done, total := studyprogress.WeekCompletion(state.Tasks, now)

	fmt.Fprintf(w, "Level %d (%d XP, %.0f%% to next)\n", svc.Store().Level(), state.XP, svc.Store().LevelProgress()*100)
	fmt.Fprintf(w, "Heute fällig: %d\n", len(studyprogress.DueToday(state.Tasks, now)))
	fmt.Fprintf(w, "Woche erledigt: %d/%d\n", done, total)
	fmt.Fprintf(w, "Lernzeit 7 Tage: %d min\n", studyprogress.LastSevenDaysMinutes(state.StudySessions, now))
	if days, ok := studyprogress.DaysToNextExam(state.Exams, now); ok {
		next := studyprogress.NextExams(state.Exams, 1)[0]
		fmt.Fprintf(w, "Nächste Prüfung: %s am %s (in %d Tagen)\n", next.Subject, next.Date, days)
	} else {
		fmt.Fprintln(w, "Nächste Prüfung: keine")
	}
}

func patchKeys(p model.StatePatch) string {
	var keys []string
	if p.Tasks != nil {
		keys = append(keys, "tasks")
	}
	if p.Exams != nil {
		keys = append(keys, "exams")
	}
	if p.StudySessions != nil {
		keys = append(keys, "studySessions")
	}
	if p.XP != nil {
		keys = append(keys, "xp")
	}
	if p.Theme != nil {
		keys = append(keys, "theme")
	}
	if len(keys) == 0 {
		return "nothing"
	}
	return strings.Join(keys, ", ")
}
