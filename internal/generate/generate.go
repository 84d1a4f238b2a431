// Package generate turns free text into flashcard question/answer pairs
// using an LLM provider.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/flashmaster/internal/deck"
	"github.com/abhisek/flashmaster/internal/llm"
)

// ErrNothingExtracted is returned when generation succeeds but yields no
// usable pairs.
var ErrNothingExtracted = errors.New("no flashcards could be extracted from this text")

// Purpose labels generation requests in the LLM event log.
const Purpose = "flashcards"

const systemPrompt = "You are an expert educator. Extract key concepts and create clear, " +
	"concise question-and-answer pairs for flashcards. Return strictly JSON data."

const userPromptPrefix = "Extract flashcards (Question and Answer pairs) from the following text: \n\n"

// Generator extracts flashcards from text.
type Generator interface {
	Generate(ctx context.Context, text string) ([]deck.CardInput, error)
}

// Schema is the structured output requested from the model. The pairs are
// wrapped in an object because strict JSON-schema modes reject top-level
// arrays.
var Schema = &llm.Schema{
	Name:        "flashcards",
	Description: "Question and answer pairs extracted from study material",
	Definition: map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"cards"},
		"properties": map[string]any{
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"question", "answer"},
					"properties": map[string]any{
						"question": map[string]any{"type": "string", "description": "The question on the front of the card"},
						"answer":   map[string]any{"type": "string", "description": "The answer on the back of the card"},
					},
				},
			},
		},
	},
}

type output struct {
	Cards []deck.CardInput `json:"cards"`
}

// LLMGenerator implements Generator on an llm.Provider.
type LLMGenerator struct {
	provider  llm.Provider
	maxTokens int
}

// Option configures an LLMGenerator.
type Option func(*LLMGenerator)

// WithMaxTokens caps the size of the generated response.
func WithMaxTokens(n int) Option {
	return func(g *LLMGenerator) { g.maxTokens = n }
}

// New returns a generator backed by provider.
func New(provider llm.Provider, opts ...Option) *LLMGenerator {
	g := &LLMGenerator{provider: provider, maxTokens: 8192}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends text to the model and returns the extracted pairs in model
// order. Pairs with a blank question or answer are dropped; if nothing is
// left the error is ErrNothingExtracted. The text is sent as-is.
func (g *LLMGenerator) Generate(ctx context.Context, text string) ([]deck.CardInput, error) {
	resp, err := g.provider.Generate(llm.WithPurpose(ctx, Purpose), llm.Request{
		System:    systemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: userPromptPrefix + text}},
		Schema:    Schema,
		MaxTokens: g.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate flashcards: %w", err)
	}

	var out output
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode flashcards: %w", err)
	}

	cards := Clean(out.Cards)
	if len(cards) == 0 {
		return nil, ErrNothingExtracted
	}
	return cards, nil
}

// Clean trims whitespace and drops pairs missing either side.
func Clean(in []deck.CardInput) []deck.CardInput {
	out := make([]deck.CardInput, 0, len(in))
	for _, c := range in {
		q, a := strings.TrimSpace(c.Question), strings.TrimSpace(c.Answer)
		if q == "" || a == "" {
			continue
		}
		out = append(out, deck.CardInput{Question: q, Answer: a})
	}
	return out
}
