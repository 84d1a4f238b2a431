package deck

import (
	"errors"
	"time"
)

// DefaultCategory is the label given to decks created through import.
const DefaultCategory = "General"

var (
	// ErrNotFound is returned when a deck id does not match any deck.
	ErrNotFound = errors.New("deck not found")

	// ErrNoCards is returned when a deck would be created without cards.
	ErrNoCards = errors.New("deck has no cards")

	// ErrNoState is returned by a Store when nothing has been persisted yet.
	ErrNoState = errors.New("no persisted deck state")

	// ErrCorruptState is returned by a Store when the persisted value
	// cannot be decoded.
	ErrCorruptState = errors.New("persisted deck state is corrupt")
)

// Flashcard is a single question/answer pair.
type Flashcard struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CardInput is a question/answer pair that has not been assigned an id yet.
type CardInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Timestamp is a point in time stored as Unix milliseconds.
type Timestamp int64

// TimestampOf converts t to a Timestamp.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time returns the timestamp as a time.Time in the local zone.
func (ts Timestamp) Time() time.Time {
	return time.UnixMilli(int64(ts))
}

// Deck is an ordered set of flashcards with a mastery score.
type Deck struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Category      string      `json:"category"`
	Cards         []Flashcard `json:"cards"`
	Mastery       int         `json:"mastery"`
	LastStudiedAt *Timestamp  `json:"lastStudiedAt,omitempty"`
	CreatedAt     Timestamp   `json:"createdAt"`
}

// Studied reports whether the deck has completed at least one study session.
func (d Deck) Studied() bool {
	return d.LastStudiedAt != nil
}

// clone returns a deep copy so callers cannot mutate repository state.
func (d Deck) clone() Deck {
	out := d
	out.Cards = append([]Flashcard(nil), d.Cards...)
	if d.LastStudiedAt != nil {
		ts := *d.LastStudiedAt
		out.LastStudiedAt = &ts
	}
	return out
}

// ClampMastery limits m to the range [0, 100].
func ClampMastery(m int) int {
	switch {
	case m < 0:
		return 0
	case m > 100:
		return 100
	}
	return m
}
