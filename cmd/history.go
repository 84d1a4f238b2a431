package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashmaster/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show completed study sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		deckID, _ := cmd.Flags().GetString("deck")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.EventRepo().QueryStudySessions(cmd.Context(), store.QueryOpts{Limit: limit, DeckID: deckID})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No study sessions recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-19s  %-36s  %7s  %7s\n", "Completed", "Deck", "Score", "Mastery")
		fmt.Fprintln(out, strings.Repeat("─", 76))
		for _, e := range sessions {
			fmt.Fprintf(out, "%-19s  %-36s  %3d/%-3d  %6d%%\n",
				e.CompletedAt.Local().Format(time.DateTime),
				truncate(e.DeckTitle, 36),
				e.Correct, e.Total, e.Mastery)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	historyCmd.Flags().String("deck", "", "Only show sessions for this deck id")
}
