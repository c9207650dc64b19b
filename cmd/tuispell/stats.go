package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuispell/internal/config"
	"github.com/verte-zerg/tuispell/internal/errorlog"
	"github.com/verte-zerg/tuispell/internal/model"
	"github.com/verte-zerg/tuispell/internal/stats"
	"github.com/verte-zerg/tuispell/internal/statsui"
	"github.com/verte-zerg/tuispell/internal/store"
)

const (
	defaultCurveWindow = 5
	defaultTopWords    = 20
)

var (
	statsSource      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool

	errorsTop   int
	errorsReset bool
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSource, "source", "", "source filter (ai, proxy, local)")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the interactive view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	cfg := model.StatsConfig{
		Source: statsSource,
		Since:  sinceTime,
		Last:   statsLast,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		report, err := stats.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}
		width := stats.TerminalWidth()
		return report.Render(cmd.OutOrStdout(), statsCurveWindow, defaultTopWords, width)
	}

	ui := statsui.NewModel(func(ctx context.Context) (stats.Report, error) {
		return stats.BuildReport(ctx, st, cfg)
	})
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newErrorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "errors",
		Short: "Show or reset misspelled words",
		Args:  cobra.NoArgs,
		RunE:  runErrorsCmd,
	}
	cmd.Flags().IntVar(&errorsTop, "top", defaultTopWords, "number of words to show (0 for all)")
	cmd.Flags().BoolVar(&errorsReset, "reset", false, "clear the recorded errors")
	return cmd
}

func runErrorsCmd(cmd *cobra.Command, _ []string) error {
	if errorsTop < 0 {
		return fmt.Errorf("--top must be >= 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	log := errorlog.New(st, nil)
	if errorsReset {
		if err := log.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("failed to reset errors: %w", err)
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "Spelling errors cleared.")
		return err
	}
	return stats.RenderErrorTable(cmd.OutOrStdout(), log.Snapshot(cmd.Context()), errorsTop, stats.TerminalWidth())
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
