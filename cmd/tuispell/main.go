// Package main provides the CLI entrypoint for tuispell.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/tuispell/internal/config"
	"github.com/verte-zerg/tuispell/internal/errorlog"
	"github.com/verte-zerg/tuispell/internal/llm"
	"github.com/verte-zerg/tuispell/internal/logging"
	"github.com/verte-zerg/tuispell/internal/model"
	"github.com/verte-zerg/tuispell/internal/practice"
	"github.com/verte-zerg/tuispell/internal/store"
	"github.com/verte-zerg/tuispell/internal/tui"
	"github.com/verte-zerg/tuispell/internal/wordsource"
)

const (
	defaultSource      = model.SourceAI
	defaultProxyURL    = "http://localhost:3000"
	defaultTemperature = 0.7
)

var (
	practiceWords    int
	practiceSource   string
	practiceWordList string
	practiceSuggest  bool
	proxyURL         string

	aiProvider    string
	aiModel       string
	aiBaseURL     string
	aiTemperature float64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuispell",
		Short:         "TUI spelling trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().IntVar(&practiceWords, "words", wordsource.DefaultCount, "words per session (1-50)")
	rootCmd.Flags().StringVar(&practiceSource, "source", defaultSource, "word source: ai, proxy or local")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "word list file for the local source (default: built-in list)")
	rootCmd.Flags().BoolVar(&practiceSuggest, "suggest", true, "fetch practice suggestions after a session with mistakes")
	rootCmd.Flags().StringVar(&proxyURL, "proxy-url", defaultProxyURL, "word proxy base URL for the proxy source")

	rootCmd.PersistentFlags().StringVar(&aiProvider, "provider", llm.DefaultProvider, "LLM provider")
	rootCmd.PersistentFlags().StringVar(&aiModel, "model", llm.DefaultModel, "LLM model")
	rootCmd.PersistentFlags().StringVar(&aiBaseURL, "base-url", "", "override the LLM API base URL")
	rootCmd.PersistentFlags().Float64Var(&aiTemperature, "temperature", defaultTemperature, "sampling temperature (0-2)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newErrorsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyStringConfig(cmd, "source", &practiceSource, fileCfg.Practice.Source)
	applyStringConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)
	applyBoolConfig(cmd, "suggest", &practiceSuggest, fileCfg.Practice.Suggest)
	applyStringConfig(cmd, "proxy-url", &proxyURL, fileCfg.Proxy.URL)
	applyAIConfig(cmd, fileCfg.AI)

	cfg := model.Config{
		Words:        practiceWords,
		Source:       practiceSource,
		WordListPath: resolveWordList(practiceWordList),
		Suggest:      practiceSuggest,
	}
	if err := validateConfig(cfg, aiTemperature); err != nil {
		return err
	}

	secrets, err := config.LoadSecrets()
	if err != nil {
		return err
	}
	logger, err := logging.NewFile(config.DefaultLogPath(), secrets.Debug)
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warnw("failed to close db", "error", cerr)
		}
	}()

	source, advisor, err := buildSource(cfg, aiSettings(secrets), proxyURL, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	orch := practice.New(ctx, cfg, practice.Deps{
		Source:  source,
		Advisor: advisor,
		Errors:  errorlog.New(st, logger),
		History: st,
		Logger:  logger,
	})
	logger.Infow("starting practice", "source", cfg.Source, "words", cfg.Words)

	program := tea.NewProgram(tui.NewModel(orch), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// buildSource resolves the configured word source. Every source also
// serves as the post-session advisor.
func buildSource(cfg model.Config, ai model.AIConfig, proxyURL string, logger *zap.SugaredLogger) (wordsource.Source, wordsource.Advisor, error) {
	switch cfg.Source {
	case model.SourceAI:
		provider, err := llm.New(ai)
		if err != nil {
			return nil, nil, err
		}
		src := wordsource.NewAI(provider, logger)
		return src, src, nil
	case model.SourceProxy:
		src := wordsource.NewHTTP(proxyURL, nil, logger)
		return src, src, nil
	case model.SourceLocal:
		src, err := wordsource.NewLocal(cfg.WordListPath)
		if err != nil {
			return nil, nil, err
		}
		return src, src, nil
	default:
		return nil, nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

// resolveWordList prefers an explicit path, then a user list in the config
// directory. An empty result selects the built-in list.
func resolveWordList(path string) string {
	if path != "" {
		return path
	}
	if _, err := os.Stat(config.DefaultWordListPath()); err == nil {
		return config.DefaultWordListPath()
	}
	return ""
}

func aiSettings(secrets config.Secrets) model.AIConfig {
	return model.AIConfig{
		Provider:    aiProvider,
		Model:       aiModel,
		BaseURL:     aiBaseURL,
		APIKey:      secrets.ResolvedAPIKey(),
		Temperature: aiTemperature,
	}
}

func applyAIConfig(cmd *cobra.Command, fileCfg config.AIConfig) {
	applyStringConfig(cmd, "provider", &aiProvider, fileCfg.Provider)
	applyStringConfig(cmd, "model", &aiModel, fileCfg.Model)
	applyStringConfig(cmd, "base-url", &aiBaseURL, fileCfg.BaseURL)
	applyFloatConfig(cmd, "temperature", &aiTemperature, fileCfg.Temperature)
}

func validateConfig(cfg model.Config, temperature float64) error {
	if err := wordsource.ValidateCount(cfg.Words); err != nil {
		return fmt.Errorf("--words must be between %d and %d", wordsource.MinCount, wordsource.MaxCount)
	}
	switch cfg.Source {
	case model.SourceAI, model.SourceProxy, model.SourceLocal:
	default:
		return fmt.Errorf("--source must be one of ai, proxy, local")
	}
	if cfg.Source == model.SourceProxy && proxyURL == "" {
		return fmt.Errorf("--proxy-url must not be empty for the proxy source")
	}
	if temperature < 0 || temperature > 2 {
		return fmt.Errorf("--temperature must be between 0 and 2")
	}
	return nil
}
