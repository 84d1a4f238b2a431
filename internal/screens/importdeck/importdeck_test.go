package importdeck

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashmaster/internal/deck"
	"github.com/abhisek/flashmaster/internal/llm"
	"github.com/abhisek/flashmaster/internal/router"
	"github.com/abhisek/flashmaster/internal/screen"
	"github.com/abhisek/flashmaster/internal/screen/screentest"
)

type stubGenerator struct {
	cards []deck.CardInput
	err   error
	calls int
}

func (g *stubGenerator) Generate(context.Context, string) ([]deck.CardInput, error) {
	g.calls++
	return g.cards, g.err
}

var ctrlS = tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}

func newScreen(t *testing.T, gen *stubGenerator) (*ImportScreen, *screen.Env) {
	t.Helper()
	env, _, _ := screentest.NewEnv(t, nil)
	if gen != nil {
		env.Generator = gen
	}
	s := New(env)
	s.Init()
	return s, env
}

func fill(s *ImportScreen, title, text string) {
	s.title.SetValue(title)
	s.text.SetValue(text)
}

func TestSubmitRequiresTitleAndText(t *testing.T) {
	tests := []struct {
		name, title, text string
	}{
		{"both blank", "", ""},
		{"no title", "  ", "some notes"},
		{"no text", "Rome", "\n\t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{}
			s, _ := newScreen(t, gen)
			fill(s, tt.title, tt.text)

			_, cmd := s.Update(ctrlS)

			if cmd != nil || s.processing {
				t.Fatal("invalid form must not start generation")
			}
			if s.errMsg != "Please provide both a title and some text." {
				t.Errorf("unexpected error message %q", s.errMsg)
			}
			if gen.calls != 0 {
				t.Errorf("generator called %d times", gen.calls)
			}
		})
	}
}

func TestSubmitWithoutProvider(t *testing.T) {
	s, env := newScreen(t, nil)
	env.GeneratorErr = llm.ErrNotConfigured
	fill(s, "Rome", "Rome was founded in 753 BC.")

	_, cmd := s.Update(ctrlS)

	if cmd != nil || s.processing {
		t.Fatal("expected no generation without a provider")
	}
	if !strings.Contains(s.errMsg, "No AI provider") {
		t.Errorf("expected configuration hint, got %q", s.errMsg)
	}
}

func TestSuccessfulImportCreatesDeckAndGoesHome(t *testing.T) {
	gen := &stubGenerator{cards: []deck.CardInput{
		{Question: "When was Rome founded?", Answer: "753 BC"},
		{Question: "  ", Answer: "dropped"},
	}}
	s, env := newScreen(t, gen)
	before := env.Decks.Len()
	fill(s, "  Rome  ", "Rome was founded in 753 BC.")

	_, cmd := s.Update(ctrlS)
	if cmd == nil || !s.processing {
		t.Fatal("expected generation to start")
	}
	if !s.submit.Disabled {
		t.Error("submit must be disabled while processing")
	}

	// A second submit while in flight is ignored.
	if _, again := s.Update(ctrlS); again != nil {
		t.Fatal("expected no second request while processing")
	}

	msg := screentest.Exec(cmd)
	_, next := s.Update(msg)

	if _, ok := screentest.Exec(next).(router.HomeMsg); !ok {
		t.Fatalf("expected HomeMsg, got %T", screentest.Exec(next))
	}
	if env.Decks.Len() != before+1 {
		t.Fatalf("expected one new deck, have %d", env.Decks.Len())
	}
	created := env.Decks.Decks()[0]
	if created.Title != "Rome" || created.Category != deck.DefaultCategory {
		t.Errorf("unexpected deck %+v", created)
	}
	if len(created.Cards) != 1 || created.Cards[0].Answer != "753 BC" {
		t.Errorf("unexpected cards %+v", created.Cards)
	}
	if gen.calls != 1 {
		t.Errorf("expected a single generation call, got %d", gen.calls)
	}
}

func TestEditsDuringGenerationIgnored(t *testing.T) {
	gen := &stubGenerator{cards: []deck.CardInput{{Question: "q", Answer: "a"}}}
	s, env := newScreen(t, gen)
	fill(s, "R", "some notes")

	_, cmd := s.Update(ctrlS)
	if cmd == nil {
		t.Fatal("expected generation to start")
	}

	s.Update(screentest.Special(tea.KeyBackspace))
	s.Update(screentest.Key('x'))
	if got := s.title.Value(); got != "R" {
		t.Errorf("title edited while processing: %q", got)
	}

	// Clearing the field directly must not change the submitted title.
	s.title.SetValue("")
	s.Update(screentest.Exec(cmd))

	if got := env.Decks.Decks()[0].Title; got != "R" {
		t.Errorf("expected deck titled %q, got %q", "R", got)
	}
}

func TestFormEditableAfterFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	s, _ := newScreen(t, gen)
	fill(s, "R", "some notes")

	_, cmd := s.Update(ctrlS)
	s.Update(screentest.Exec(cmd))
	if s.processing {
		t.Fatal("expected processing to end after a failure")
	}

	s.Update(screentest.Key('x'))
	if got := s.title.Value(); got != "Rx" {
		t.Errorf("expected title to accept input again, got %q", got)
	}
}

func TestEmptyGenerationCreatesNothing(t *testing.T) {
	gen := &stubGenerator{cards: nil}
	s, env := newScreen(t, gen)
	before := env.Decks.Decks()
	fill(s, "Rome", "lorem ipsum")

	_, cmd := s.Update(ctrlS)
	_, next := s.Update(screentest.Exec(cmd))

	if next != nil {
		t.Fatalf("expected no navigation, got %T", screentest.Exec(next))
	}
	if s.errMsg != "No flashcards could be extracted from this text." {
		t.Errorf("unexpected error message %q", s.errMsg)
	}
	if s.processing || s.submit.Disabled {
		t.Error("form should be usable again after a failure")
	}
	if got := env.Decks.Decks(); len(got) != len(before) || got[0].ID != before[0].ID {
		t.Error("collection must be unchanged")
	}
}

func TestGenerationFailureShownInline(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rate limit", &llm.ErrRateLimit{Err: errors.New("429")}, "rate limit"},
		{"unavailable", &llm.ErrProviderUnavailable{Err: errors.New("503")}, "Please try again"},
		{"other", errors.New("boom"), "Failed to generate flashcards: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, env := newScreen(t, &stubGenerator{err: tt.err})
			before := env.Decks.Len()
			fill(s, "Rome", "text")

			_, cmd := s.Update(ctrlS)
			s.Update(screentest.Exec(cmd))

			if !strings.Contains(strings.ToLower(s.errMsg), strings.ToLower(tt.want)) {
				t.Errorf("expected %q in %q", tt.want, s.errMsg)
			}
			if env.Decks.Len() != before {
				t.Error("no deck may be created on failure")
			}
			if !strings.Contains(s.View(100, 40), "⚠") {
				t.Error("error should be rendered")
			}
		})
	}
}

func TestResultForOtherDialogDiscarded(t *testing.T) {
	gen := &stubGenerator{cards: []deck.CardInput{{Question: "q", Answer: "a"}}}
	first, env := newScreen(t, gen)
	fill(first, "First", "text")
	_, cmd := first.Update(ctrlS)
	stale := screentest.Exec(cmd)

	// The first dialog was closed and a new one opened.
	second := New(env)
	second.Init()
	before := env.Decks.Len()

	_, next := second.Update(stale)

	if next != nil {
		t.Fatal("stale result must not navigate")
	}
	if env.Decks.Len() != before {
		t.Fatal("stale result must not create a deck")
	}
	if second.errMsg != "" || second.processing {
		t.Error("stale result must not touch the new dialog")
	}
}

func TestTabCyclesFocus(t *testing.T) {
	s, _ := newScreen(t, &stubGenerator{})
	if s.focus != fieldTitle || !s.title.Focused() {
		t.Fatal("title should be focused initially")
	}

	s.Update(screentest.Special(tea.KeyTab))
	if s.focus != fieldText || !s.text.Focused() || s.title.Focused() {
		t.Fatal("expected text area focus")
	}
	s.Update(screentest.Special(tea.KeyTab))
	if s.focus != fieldSubmit || !s.submit.Focused {
		t.Fatal("expected submit focus")
	}
	s.Update(screentest.Special(tea.KeyTab))
	if s.focus != fieldTitle {
		t.Fatal("expected focus to wrap to title")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.focus != fieldSubmit {
		t.Fatal("expected shift+tab to wrap backwards")
	}
}

func TestTypingAndEnterOnSubmit(t *testing.T) {
	gen := &stubGenerator{cards: []deck.CardInput{{Question: "q", Answer: "a"}}}
	s, _ := newScreen(t, gen)

	for _, r := range "Go" {
		s.Update(screentest.Key(r))
	}
	s.Update(screentest.Special(tea.KeyEnter))
	if s.focus != fieldText {
		t.Fatal("enter in the title should move to the text area")
	}
	for _, r := range "notes" {
		s.Update(screentest.Key(r))
	}
	s.Update(screentest.Special(tea.KeyTab))

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	if cmd == nil || !s.processing {
		t.Fatal("enter on the submit button should start generation")
	}
	if s.title.Value() != "Go" || s.text.Value() != "notes" {
		t.Errorf("unexpected form values %q / %q", s.title.Value(), s.text.Value())
	}
}

func TestRoute(t *testing.T) {
	s, _ := newScreen(t, nil)
	if s.Route().Kind != screen.Import {
		t.Errorf("expected import route, got %v", s.Route().Kind)
	}
}
