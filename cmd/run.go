package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizforge/internal/app"
	"github.com/abhisek/quizforge/internal/auth"
	"github.com/abhisek/quizforge/internal/config"
	"github.com/abhisek/quizforge/internal/extract"
	"github.com/abhisek/quizforge/internal/llm"
	"github.com/abhisek/quizforge/internal/logging"
	"github.com/abhisek/quizforge/internal/quizgen"
	"github.com/abhisek/quizforge/internal/store"
)

// runApp loads configuration, opens the store, builds dependencies, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logger.Sync()

	dbPath := cfg.DB
	if dbPath == "" {
		dbPath, err = resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
	} else if err := store.EnsureDir(dbPath); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		Config: cfg,
		Store:  st,
		Auth:   auth.NewService(st.Profiles()),
		Logger: logger,
	}

	provider, err := llm.NewProviderFromEnv(ctx, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quiz generation will be unavailable.")
		logger.Warn("llm provider not configured", zap.Error(err))
	} else {
		opts.Generator = quizgen.New(provider, quizgen.DefaultConfig())
		opts.Extractor = extract.New(provider, extract.DefaultConfig())
	}

	return app.Run(opts)
}
