package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashmaster/internal/deck"
	"github.com/abhisek/flashmaster/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Create a deck from text (via the LLM) or from a spreadsheet",
	Long: `Create a deck from text or a spreadsheet.

Text is read from --file, or from stdin when neither --file nor --sheet is
given, and sent to the configured LLM provider to extract question/answer
pairs. --sheet reads pairs directly from the first two columns of a .csv or
.xlsx file without calling the LLM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		file, _ := cmd.Flags().GetString("file")
		sheet, _ := cmd.Flags().GetString("sheet")
		if file != "" && sheet != "" {
			return fmt.Errorf("--file and --sheet are mutually exclusive")
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		var created deck.Deck
		if sheet != "" {
			created, err = importer.ImportSheet(ctx, d.decks, title, sheet)
		} else {
			created, err = importText(ctx, cmd, d, title, file)
		}
		if err != nil {
			d.logger.Warn("import failed", "title", title, "err", err)
			return importError(err, sheet != "")
		}

		d.logger.Info("deck imported", "deck", created.ID, "title", created.Title, "cards", len(created.Cards))
		fmt.Fprintf(cmd.OutOrStdout(), "Created deck %q with %d cards (id %s)\n",
			created.Title, len(created.Cards), created.ID)
		return nil
	},
}

func importText(ctx context.Context, cmd *cobra.Command, d *deps, title, file string) (deck.Deck, error) {
	var (
		raw []byte
		err error
	)
	if file != "" {
		raw, err = os.ReadFile(file)
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return deck.Deck{}, fmt.Errorf("read input: %w", err)
	}

	req := importer.Request{Title: title, Text: string(raw)}
	if err := req.Validate(); err != nil {
		return deck.Deck{}, err
	}

	gen, err := d.generator(ctx)
	if err != nil {
		return deck.Deck{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout())
	defer cancel()
	return importer.Run(ctx, gen, d.decks, req)
}

// importError maps known failures to their user-facing message. Sheet
// read errors (bad path, unsupported type) are returned as is.
func importError(err error, fromSheet bool) error {
	known := errors.Is(err, importer.ErrMissingInput) || errors.Is(err, importer.ErrEmptySheet)
	if fromSheet && !known {
		return err
	}
	return errors.New(importer.Message(err))
}

func init() {
	importCmd.Flags().StringP("title", "t", "", "Deck title (required)")
	importCmd.Flags().StringP("file", "f", "", "Read source text from this file")
	importCmd.Flags().StringP("sheet", "s", "", "Read question/answer pairs from a .csv or .xlsx file")
	importCmd.MarkFlagRequired("title")
}
