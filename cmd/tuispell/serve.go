package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuispell/internal/config"
	"github.com/verte-zerg/tuispell/internal/llm"
	"github.com/verte-zerg/tuispell/internal/logging"
	"github.com/verte-zerg/tuispell/internal/proxy"
	"github.com/verte-zerg/tuispell/internal/wordsource"
)

var serveListen string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the word proxy server",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveListen, "listen", proxy.DefaultAddr, "listen address")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "listen", &serveListen, fileCfg.Proxy.Listen)
	applyAIConfig(cmd, fileCfg.AI)
	if aiTemperature < 0 || aiTemperature > 2 {
		return fmt.Errorf("--temperature must be between 0 and 2")
	}

	secrets, err := config.LoadSecrets()
	if err != nil {
		return err
	}
	logger, err := logging.NewStderr(secrets.Debug)
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	provider, err := llm.New(aiSettings(secrets))
	if err != nil {
		return err
	}
	if secrets.ResolvedAPIKey() == "" {
		logger.Warnw("no API key in TUISPELL_API_KEY or MISTRAL_API_KEY; relying on provider defaults")
	}
	logger.Infow("using model", "provider", aiProvider, "model", provider.Model())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	srv := proxy.NewServer(serveListen, wordsource.NewAI(provider, logger), logger)
	return srv.Run(ctx)
}
