package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizforge/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizforge",
	Short: "Turn your study documents into quizzes",
	Long:  "Quizforge — terminal app that generates multiple-choice quizzes from your documents and tracks which topics you have mastered.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZFORGE_DB env var)")
	rootCmd.PersistentFlags().String("profile", "", "Profile name for CLI commands that read learner data")

	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(objectivesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZFORGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the resolved database for a CLI command.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// resolveProfile maps the --profile flag to a stored profile.
func resolveProfile(cmd *cobra.Command, s *store.Store) (*store.Profile, error) {
	name, _ := cmd.Flags().GetString("profile")
	if name == "" {
		return nil, fmt.Errorf("--profile is required")
	}
	p, err := s.Profiles().ByName(context.Background(), name)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	return p, nil
}
