// Package importdeck is the screen that turns pasted text into a new deck.
package importdeck

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/flashmaster/internal/deck"
	"github.com/abhisek/flashmaster/internal/importer"
	"github.com/abhisek/flashmaster/internal/llm"
	"github.com/abhisek/flashmaster/internal/router"
	"github.com/abhisek/flashmaster/internal/screen"
	"github.com/abhisek/flashmaster/internal/ui/components"
	"github.com/abhisek/flashmaster/internal/ui/layout"
)

type field int

const (
	fieldTitle field = iota
	fieldText
	fieldSubmit
	fieldCount
)

// generatedMsg carries a finished generation back to the dialog that
// started it.
type generatedMsg struct {
	dialogID string
	title    string // trimmed title as submitted
	cards    []deck.CardInput
	err      error
}

// ImportScreen collects a title and source text and generates a deck.
type ImportScreen struct {
	env *screen.Env
	id  string

	title  components.TextInput
	text   textarea.Model
	submit components.Button
	focus  field

	// processing is true while a generation request is in flight.
	processing bool
	errMsg     string
}

var _ screen.Screen = (*ImportScreen)(nil)

// New creates an import dialog with a fresh id.
func New(env *screen.Env) *ImportScreen {
	ta := textarea.New()
	ta.Placeholder = "Paste your notes, an article, or any study material here..."
	ta.ShowLineNumbers = false
	ta.MaxHeight = 0
	ta.SetHeight(8)

	s := &ImportScreen{
		env:   env,
		id:    uuid.NewString(),
		title: components.NewTextInput("Deck Title", "e.g. History of Rome", 120),
		text:  ta,
	}
	s.submit = components.NewButton("Generate Flashcards", s.start)
	return s
}

func (s *ImportScreen) Init() tea.Cmd {
	return s.setFocus(fieldTitle)
}

func (s *ImportScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.title.Blur()
	s.text.Blur()
	s.submit.Focused = false

	switch f {
	case fieldTitle:
		return s.title.Focus()
	case fieldText:
		return s.text.Focus()
	default:
		s.submit.Focused = true
		return nil
	}
}

func (s *ImportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	cmd := s.update(msg)
	s.syncSubmit()
	return s, cmd
}

func (s *ImportScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case generatedMsg:
		return s.handleResult(msg)

	case tea.KeyPressMsg:
		if s.processing {
			// The form is frozen until the request finishes.
			return nil
		}
		switch msg.String() {
		case "tab":
			return s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab":
			return s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "ctrl+s":
			return s.start()
		case "enter":
			if s.focus == fieldTitle {
				return s.setFocus(fieldText)
			}
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldTitle:
		s.title, cmd = s.title.Update(msg)
	case fieldText:
		s.text, cmd = s.text.Update(msg)
	case fieldSubmit:
		s.submit, cmd = s.submit.Update(msg)
	}
	return cmd
}

// syncSubmit disables the submit button while a request is in flight.
func (s *ImportScreen) syncSubmit() {
	s.submit.Disabled = s.processing
	if s.processing {
		s.submit.Label = "Generating..."
	} else {
		s.submit.Label = "Generate Flashcards"
	}
}

// start validates the form and launches generation. It does nothing while
// a request is already in flight.
func (s *ImportScreen) start() tea.Cmd {
	if s.processing {
		return nil
	}

	req := importer.Request{Title: s.title.Value(), Text: s.text.Value()}
	if err := req.Validate(); err != nil {
		s.errMsg = importer.Message(err)
		return nil
	}
	if s.env.Generator == nil {
		err := s.env.GeneratorErr
		if err == nil {
			err = llm.ErrNotConfigured
		}
		s.errMsg = importer.Message(err)
		return nil
	}

	s.processing = true
	s.errMsg = ""

	gen, id, timeout := s.env.Generator, s.id, s.env.Timeout
	title := strings.TrimSpace(req.Title)
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		cards, err := importer.Extract(ctx, gen, req.Text)
		return generatedMsg{dialogID: id, title: title, cards: cards, err: err}
	}
}

// handleResult applies a generation result addressed to this dialog.
// Results from other dialogs are dropped.
func (s *ImportScreen) handleResult(msg generatedMsg) tea.Cmd {
	if msg.dialogID != s.id || !s.processing {
		s.env.Logger.Debug("discarding stale generation result", "dialog", msg.dialogID)
		return nil
	}

	s.processing = false

	if msg.err != nil {
		s.env.Logger.Warn("flashcard generation failed", "err", msg.err)
		s.errMsg = importer.Message(msg.err)
		return nil
	}

	d, err := s.env.Decks.CreateDeck(context.Background(), msg.title, msg.cards)
	if err != nil {
		s.env.Logger.Error("failed to create deck", "title", msg.title, "err", err)
		s.errMsg = importer.Message(err)
		return nil
	}

	s.env.Logger.Info("deck imported", "deck", d.ID, "title", d.Title, "cards", len(d.Cards))
	return router.Home
}

func (s *ImportScreen) Title() string {
	return "Import Flashcards"
}

func (s *ImportScreen) Route() screen.Route {
	return screen.Route{Kind: screen.Import}
}

func (s *ImportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Generate"},
		{Key: "Esc", Description: "Cancel"},
	}
}
