package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List decks with their mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		decks := d.decks.Decks()
		if len(decks) == 0 {
			fmt.Fprintln(out, "No decks found. Try creating one with `flashmaster import`.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-32s  %-10s  %5s  %7s  %s\n",
			"ID", "Title", "Category", "Cards", "Mastery", "Last studied")
		fmt.Fprintln(out, strings.Repeat("─", 118))

		for _, dk := range decks {
			if category != "" && !strings.EqualFold(dk.Category, category) {
				continue
			}
			studied := "Not started"
			if dk.LastStudiedAt != nil {
				studied = dk.LastStudiedAt.Time().Local().Format(time.DateTime)
			}
			fmt.Fprintf(out, "%-36s  %-32s  %-10s  %5d  %6d%%  %s\n",
				truncate(dk.ID, 36), truncate(dk.Title, 32), truncate(dk.Category, 10),
				len(dk.Cards), dk.Mastery, studied)
		}
		return nil
	},
}

func init() {
	decksCmd.Flags().StringP("category", "c", "", "Only list decks in this category")
}
