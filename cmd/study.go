package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashmaster/internal/deck"
)

var studyCmd = &cobra.Command{
	Use:   "study <deck>",
	Short: "Open the study screen for a deck (by id or title)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		target, err := resolveDeck(d.decks, args[0])
		d.Close()
		if err != nil {
			return err
		}
		return runApp(cmd, target.ID)
	},
}

// resolveDeck finds a deck by exact id, then by case-insensitive title,
// then by unique title prefix.
func resolveDeck(repo *deck.Repository, ref string) (deck.Deck, error) {
	if d, ok := repo.FindDeck(ref); ok {
		return d, nil
	}

	var prefixed []deck.Deck
	for _, d := range repo.Decks() {
		if strings.EqualFold(d.Title, ref) {
			return d, nil
		}
		if strings.HasPrefix(strings.ToLower(d.Title), strings.ToLower(ref)) {
			prefixed = append(prefixed, d)
		}
	}

	switch len(prefixed) {
	case 1:
		return prefixed[0], nil
	case 0:
		return deck.Deck{}, fmt.Errorf("%q: %w", ref, deck.ErrNotFound)
	default:
		titles := make([]string, len(prefixed))
		for i, d := range prefixed {
			titles[i] = d.Title
		}
		return deck.Deck{}, fmt.Errorf("%q matches several decks: %s", ref, strings.Join(titles, ", "))
	}
}
