package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Store persists the whole deck collection as one value.
type Store interface {
	// Load returns the persisted collection. It returns ErrNoState when
	// nothing has been saved and ErrCorruptState when the value is unreadable.
	Load(ctx context.Context) ([]Deck, error)

	// Save replaces the persisted collection.
	Save(ctx context.Context, decks []Deck) error
}

// Repository owns the in-memory deck collection for a session.
// Every mutation writes the full collection through to the Store.
//
// A Repository has a single writer and is not safe for concurrent use.
type Repository struct {
	store  Store
	decks  []Deck
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDFunc overrides id generation for decks and cards.
func WithIDFunc(fn func() string) Option {
	return func(r *Repository) { r.newID = fn }
}

// WithLogger sets the logger used for best-effort persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) { r.logger = l }
}

// Open loads the collection from store. When no state exists, or the stored
// value is corrupt, the seed collection is used and persisted immediately.
// Only an unexpected store failure is returned as an error.
func Open(ctx context.Context, store Store, opts ...Option) (*Repository, error) {
	r := &Repository{
		store:  store,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	decks, err := store.Load(ctx)
	switch {
	case err == nil:
		r.decks = decks
		return r, nil
	case errors.Is(err, ErrCorruptState):
		r.logger.Warn("failed to load decks, falling back to sample decks", "err", err)
	case errors.Is(err, ErrNoState):
		r.logger.Info("no saved decks, writing sample decks")
	default:
		return nil, fmt.Errorf("load decks: %w", err)
	}

	r.decks = SeedDecks(r.now())
	r.persist(ctx)
	return r, nil
}

// Decks returns a copy of the collection in display order.
func (r *Repository) Decks() []Deck {
	out := make([]Deck, len(r.decks))
	for i, d := range r.decks {
		out[i] = d.clone()
	}
	return out
}

// Recent returns up to n decks from the front of the collection.
func (r *Repository) Recent(n int) []Deck {
	all := r.Decks()
	if n < len(all) {
		return all[:n]
	}
	return all
}

// Len returns the number of decks.
func (r *Repository) Len() int {
	return len(r.decks)
}

// FindDeck looks up a deck by id.
func (r *Repository) FindDeck(id string) (Deck, bool) {
	for _, d := range r.decks {
		if d.ID == id {
			return d.clone(), true
		}
	}
	return Deck{}, false
}

// CreateDeck builds a deck from cards and places it at the front of the
// collection. It returns ErrNoCards and leaves the collection untouched when
// cards is empty.
func (r *Repository) CreateDeck(ctx context.Context, title string, cards []CardInput) (Deck, error) {
	if len(cards) == 0 {
		return Deck{}, ErrNoCards
	}

	now := r.now()
	d := Deck{
		ID:          r.newID(),
		Title:       title,
		Description: fmt.Sprintf("Imported on %s", now.Format("1/2/2006")),
		Category:    DefaultCategory,
		Cards:       make([]Flashcard, len(cards)),
		Mastery:     0,
		CreatedAt:   TimestampOf(now),
	}
	for i, c := range cards {
		d.Cards[i] = Flashcard{ID: r.newID(), Question: c.Question, Answer: c.Answer}
	}

	next := make([]Deck, 0, len(r.decks)+1)
	next = append(next, d)
	next = append(next, r.decks...)
	r.decks = next

	r.persist(ctx)
	return d.clone(), nil
}

// UpdateMastery records the result of a finished study session. The score is
// clamped to [0, 100] and the deck's last-studied time is set to now.
// It returns ErrNotFound, leaving the collection unchanged, for an unknown id.
func (r *Repository) UpdateMastery(ctx context.Context, id string, mastery int) error {
	idx := -1
	for i, d := range r.decks {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("update mastery %q: %w", id, ErrNotFound)
	}

	studied := TimestampOf(r.now())
	next := make([]Deck, len(r.decks))
	copy(next, r.decks)
	updated := next[idx]
	updated.Mastery = ClampMastery(mastery)
	updated.LastStudiedAt = &studied
	next[idx] = updated
	r.decks = next

	r.persist(ctx)
	return nil
}

// persist writes the collection. Failures are logged and the in-memory
// state is kept as the source of truth.
func (r *Repository) persist(ctx context.Context) {
	if err := r.store.Save(ctx, r.decks); err != nil {
		r.logger.Error("failed to save decks", "count", len(r.decks), "err", err)
	}
}
