package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/vocabz/internal/config"
	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "vocabz",
	Short: "Chinese vocabulary flashcards with spaced repetition",
	Long:  "vocabz is a terminal flashcard trainer that schedules Chinese vocabulary reviews by how well you know each card.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides VOCABZ_DB env var)")
	pf.String("deck", "", "Deck id from config.yaml, or a deck JSON file or URL")
	pf.String("mode", deck.DefaultMode, "Learning mode: LM-recognition, LM-production or LM-listening")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-file", "", "Write logs to this file")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db or the db config key
// (highest priority), then VOCABZ_DB env var, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
