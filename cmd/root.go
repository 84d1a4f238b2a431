package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flashmaster",
	Short: "Terminal flashcards with AI import",
	Long:  "FlashMaster: study question/answer decks in the terminal, track mastery per deck, and turn any text into flashcards with an LLM.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FLASHMASTER_DB and the config file)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/flashmaster/config.toml)")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
