package study

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/flashmaster/internal/deck"
)

var (
	// ErrEmptyDeck is returned when a study session is requested for a deck
	// without cards.
	ErrEmptyDeck = errors.New("deck has no cards to study")

	// ErrInvalidTransition is returned when an action is not allowed in the
	// current state. The session is left unchanged.
	ErrInvalidTransition = errors.New("invalid study transition")
)

// Side is the face of the card currently shown.
type Side int

const (
	SideQuestion Side = iota
	SideAnswer
)

func (s Side) String() string {
	if s == SideAnswer {
		return "answer"
	}
	return "question"
}

// State is a snapshot of the session. While Complete is false the session is
// presenting card Index on Side; once Complete, Mastery holds the final score.
type State struct {
	Index    int
	Side     Side
	Complete bool
	Mastery  int
}

func (s State) String() string {
	if s.Complete {
		return fmt.Sprintf("Complete(%d)", s.Mastery)
	}
	return fmt.Sprintf("Presenting(%d, %s)", s.Index, s.Side)
}

// Session drives one pass over a deck's cards. It has no reference to the
// deck repository; callers persist the final mastery themselves.
type Session struct {
	deckID  string
	cards   []deck.Flashcard
	state   State
	correct int
}

// New starts a session at the first card's question.
func New(d deck.Deck) (*Session, error) {
	if len(d.Cards) == 0 {
		return nil, fmt.Errorf("study %q: %w", d.ID, ErrEmptyDeck)
	}
	return &Session{
		deckID: d.ID,
		cards:  append([]deck.Flashcard(nil), d.Cards...),
		state:  State{Index: 0, Side: SideQuestion},
	}, nil
}

// DeckID returns the id of the deck being studied.
func (s *Session) DeckID() string { return s.deckID }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Total returns the number of cards in the session.
func (s *Session) Total() int { return len(s.cards) }

// Correct returns the number of cards graded correct so far.
func (s *Session) Correct() int { return s.correct }

// Card returns the card at the current index. After completion it returns
// the last card.
func (s *Session) Card() deck.Flashcard {
	return s.cards[s.state.Index]
}

// Progress returns the 1-based position of the current card as a fraction of
// the deck, in (0, 1].
func (s *Session) Progress() float64 {
	return float64(s.state.Index+1) / float64(len(s.cards))
}

// Flip turns the current card over. Flipping back to the question before
// grading is allowed and does not affect the score.
func (s *Session) Flip() error {
	if s.state.Complete {
		return fmt.Errorf("flip in %s: %w", s.state, ErrInvalidTransition)
	}
	if s.state.Side == SideQuestion {
		s.state.Side = SideAnswer
	} else {
		s.state.Side = SideQuestion
	}
	return nil
}

// Grade records whether the current card was answered correctly. It is only
// valid once the answer is showing. Grading the last card completes the
// session with the final mastery score.
func (s *Session) Grade(correct bool) (State, error) {
	if s.state.Complete || s.state.Side != SideAnswer {
		return s.state, fmt.Errorf("grade in %s: %w", s.state, ErrInvalidTransition)
	}

	if correct {
		s.correct++
	}

	if s.state.Index == len(s.cards)-1 {
		s.state = State{
			Index:    s.state.Index,
			Side:     SideAnswer,
			Complete: true,
			Mastery:  FinalMastery(s.correct, len(s.cards)),
		}
		return s.state, nil
	}

	s.state = State{Index: s.state.Index + 1, Side: SideQuestion}
	return s.state, nil
}

// FinalMastery converts a score into a 0-100 mastery value, rounding half up.
// A total of zero yields zero.
func FinalMastery(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return deck.ClampMastery(int(math.Round(100 * float64(correct) / float64(total))))
}
