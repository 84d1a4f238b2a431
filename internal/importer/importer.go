// Package importer creates decks from pasted text or spreadsheet files.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/flashmaster/internal/deck"
	"github.com/abhisek/flashmaster/internal/generate"
	"github.com/abhisek/flashmaster/internal/llm"
)

// ErrMissingInput is returned by Request.Validate when the title or text is
// blank.
var ErrMissingInput = errors.New("title and text are required")

// Request is one import submitted from the import screen or CLI.
type Request struct {
	Title string
	Text  string
}

// Validate checks that both fields have non-whitespace content.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Text) == "" {
		return ErrMissingInput
	}
	return nil
}

// Creator is the deck repository operation an import ends in.
type Creator interface {
	CreateDeck(ctx context.Context, title string, cards []deck.CardInput) (deck.Deck, error)
}

// Extract runs gen over text. Zero usable pairs is reported as
// generate.ErrNothingExtracted whatever the generator returned.
func Extract(ctx context.Context, gen generate.Generator, text string) ([]deck.CardInput, error) {
	cards, err := gen.Generate(ctx, text)
	if err != nil {
		return nil, err
	}
	cards = generate.Clean(cards)
	if len(cards) == 0 {
		return nil, generate.ErrNothingExtracted
	}
	return cards, nil
}

// Run validates req, extracts cards and creates the deck. Nothing is created
// on failure.
func Run(ctx context.Context, gen generate.Generator, creator Creator, req Request) (deck.Deck, error) {
	if err := req.Validate(); err != nil {
		return deck.Deck{}, err
	}
	cards, err := Extract(ctx, gen, req.Text)
	if err != nil {
		return deck.Deck{}, err
	}
	d, err := creator.CreateDeck(ctx, strings.TrimSpace(req.Title), cards)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("create deck: %w", err)
	}
	return d, nil
}

// ImportSheet reads pairs from a spreadsheet and creates a deck titled title.
func ImportSheet(ctx context.Context, creator Creator, title, path string) (deck.Deck, error) {
	if strings.TrimSpace(title) == "" {
		return deck.Deck{}, ErrMissingInput
	}
	cards, err := ReadSheet(path)
	if err != nil {
		return deck.Deck{}, err
	}
	d, err := creator.CreateDeck(ctx, strings.TrimSpace(title), cards)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("create deck: %w", err)
	}
	return d, nil
}

// Message returns the text shown to the user for an import failure.
func Message(err error) string {
	var (
		rl      *llm.ErrRateLimit
		unavail *llm.ErrProviderUnavailable
		invalid *llm.ErrInvalidResponse
		maxTok  *llm.ErrMaxTokensExceeded
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingInput):
		return "Please provide both a title and some text."
	case errors.Is(err, generate.ErrNothingExtracted):
		return "No flashcards could be extracted from this text."
	case errors.Is(err, ErrEmptySheet):
		return "No question/answer pairs were found in this file."
	case errors.Is(err, llm.ErrNotConfigured):
		return "No AI provider is configured. Set GEMINI_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY."
	case errors.Is(err, context.DeadlineExceeded):
		return "The AI provider took too long to respond. Please try again."
	case errors.As(err, &rl):
		return "The AI provider is rate limiting requests. Please wait a moment and try again."
	case errors.As(err, &maxTok):
		return "The text produced too many flashcards. Try importing a shorter passage."
	case errors.As(err, &invalid):
		return "The AI provider returned an unexpected response. Please try again."
	case errors.As(err, &unavail):
		return "Failed to generate flashcards. Please try again."
	}
	return "Failed to generate flashcards: " + err.Error()
}
