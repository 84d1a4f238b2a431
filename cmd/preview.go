package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashmaster/internal/generate"
	"github.com/abhisek/flashmaster/internal/importer"
	"github.com/abhisek/flashmaster/internal/llm"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Show the flashcards the LLM would extract, without saving a deck",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var raw []byte
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
		} else {
			raw, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if strings.TrimSpace(string(raw)) == "" {
			return fmt.Errorf("no text to preview")
		}

		// No event store: previews are not recorded.
		provider, err := llm.NewProvider(cmd.Context(), cfg.Provider(), nil, nil)
		if err != nil {
			return errors.New(importer.Message(err))
		}

		timeout, _ := cfg.Timeout()
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		cards, err := importer.Extract(ctx, generate.New(provider), string(raw))
		if err != nil {
			return errors.New(importer.Message(err))
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)
		fmt.Fprintf(out, "Model: %s  |  %d cards\n%s\n", provider.ModelID(), len(cards), sep)
		for i, c := range cards {
			fmt.Fprintf(out, "%2d. Q: %s\n    A: %s\n", i+1, c.Question, c.Answer)
		}
		return nil
	},
}
