package study

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashmaster/internal/deck"
	"github.com/abhisek/flashmaster/internal/router"
	"github.com/abhisek/flashmaster/internal/screen"
	"github.com/abhisek/flashmaster/internal/store"
	sess "github.com/abhisek/flashmaster/internal/study"
	"github.com/abhisek/flashmaster/internal/ui/layout"
)

// StudyScreen walks through one deck card by card.
type StudyScreen struct {
	env     *screen.Env
	deckID  string
	deck    deck.Deck
	session *sess.Session

	// loadErr is set when the deck is missing or has no cards.
	loadErr error

	complete bool
	mastery  int
}

var _ screen.Screen = (*StudyScreen)(nil)

// New creates a study screen for the deck with the given id.
func New(env *screen.Env, deckID string) *StudyScreen {
	s := &StudyScreen{env: env, deckID: deckID}

	d, ok := env.Decks.FindDeck(deckID)
	if !ok {
		s.loadErr = deck.ErrNotFound
		return s
	}
	s.deck = d

	session, err := sess.New(d)
	if err != nil {
		s.loadErr = err
		return s
	}
	s.session = session
	return s
}

func (s *StudyScreen) Init() tea.Cmd {
	return nil
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if s.session == nil {
		if kmsg.String() == "enter" {
			return s, router.Home
		}
		return s, nil
	}

	if s.complete {
		switch kmsg.String() {
		case "enter":
			return s, router.Home
		case "r":
			return s, restart(s.env, s.deckID)
		}
		return s, nil
	}

	switch kmsg.String() {
	case "space", "enter", "f":
		if err := s.session.Flip(); err != nil {
			s.env.Logger.Debug("flip rejected", "state", s.session.State(), "err", err)
		}
	case "y", "right":
		s.grade(true)
	case "n", "left":
		s.grade(false)
	}
	return s, nil
}

// grade records the answer. Grading from the question side is rejected by
// the session and leaves it unchanged.
func (s *StudyScreen) grade(correct bool) {
	st, err := s.session.Grade(correct)
	if err != nil {
		if !errors.Is(err, sess.ErrInvalidTransition) {
			s.env.Logger.Error("grade failed", "deck", s.deckID, "err", err)
		}
		return
	}
	if st.Complete {
		s.finish(st.Mastery)
	}
}

// finish writes the final score back and records the session.
func (s *StudyScreen) finish(mastery int) {
	s.complete = true
	s.mastery = mastery

	ctx := context.Background()
	if err := s.env.Decks.UpdateMastery(ctx, s.deckID, mastery); err != nil {
		s.env.Logger.Warn("failed to update mastery", "deck", s.deckID, "err", err)
	}

	if s.env.Events == nil {
		return
	}
	err := s.env.Events.AppendStudySession(ctx, store.StudySessionData{
		DeckID:    s.deckID,
		DeckTitle: s.deck.Title,
		Correct:   s.session.Correct(),
		Total:     s.session.Total(),
		Mastery:   mastery,
	})
	if err != nil {
		s.env.Logger.Warn("failed to record study session", "deck", s.deckID, "err", err)
	}
}

func restart(env *screen.Env, deckID string) tea.Cmd {
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: New(env, deckID)}
	}
}

func (s *StudyScreen) View(width, height int) string {
	switch {
	case s.loadErr != nil:
		return s.renderUnavailable(width, height)
	case s.complete:
		return s.renderComplete(width, height)
	default:
		return s.renderCard(width, height)
	}
}

func (s *StudyScreen) Title() string {
	if s.deck.Title != "" {
		return s.deck.Title
	}
	return "Study"
}

func (s *StudyScreen) Route() screen.Route {
	return screen.Route{Kind: screen.Study, DeckID: s.deckID}
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.loadErr != nil:
		return []layout.KeyHint{{Key: "Enter", Description: "Dashboard"}, {Key: "Esc", Description: "Back"}}
	case s.complete:
		return []layout.KeyHint{{Key: "Enter", Description: "Dashboard"}, {Key: "r", Description: "Study again"}}
	case s.session.State().Side == sess.SideAnswer:
		return []layout.KeyHint{
			{Key: "n/←", Description: "Still Learning"},
			{Key: "y/→", Description: "Mastered"},
			{Key: "Space", Description: "Question"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{{Key: "Space", Description: "Reveal"}, {Key: "Esc", Description: "Back"}}
	}
}
