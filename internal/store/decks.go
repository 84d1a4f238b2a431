package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/flashmaster/internal/deck"
)

// DecksKey is the kv row holding the serialized deck collection.
const DecksKey = "flashmaster_decks"

const kvTable = "kv"

// DeckStore persists the deck collection as a single JSON array in the kv
// table. It implements deck.Store.
type DeckStore struct {
	db      *sql.DB
	builder *entsql.DialectBuilder
	key     string
}

var _ deck.Store = (*DeckStore)(nil)

// Load returns the stored collection, deck.ErrNoState when the key is
// absent, or an error wrapping deck.ErrCorruptState when the value does not
// decode. Mastery is clamped to [0,100].
func (s *DeckStore) Load(ctx context.Context) ([]deck.Deck, error) {
	raw, err := s.LoadRaw(ctx)
	if err != nil {
		return nil, err
	}

	var decks []deck.Deck
	if err := json.Unmarshal(raw, &decks); err != nil {
		return nil, fmt.Errorf("%w: %v", deck.ErrCorruptState, err)
	}
	if decks == nil {
		// A stored "null" is not a collection.
		return nil, fmt.Errorf("%w: null value", deck.ErrCorruptState)
	}
	for i := range decks {
		decks[i].Mastery = deck.ClampMastery(decks[i].Mastery)
	}
	return decks, nil
}

// Save replaces the stored collection.
func (s *DeckStore) Save(ctx context.Context, decks []deck.Deck) error {
	if decks == nil {
		decks = []deck.Deck{}
	}
	raw, err := json.Marshal(decks)
	if err != nil {
		return fmt.Errorf("marshal decks: %w", err)
	}
	return s.SaveRaw(ctx, raw)
}

// LoadRaw returns the stored bytes under the deck key.
func (s *DeckStore) LoadRaw(ctx context.Context) ([]byte, error) {
	query, args := s.builder.Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("name", s.key)).
		Query()

	var value string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, deck.ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.key, err)
	}
	return []byte(value), nil
}

// SaveRaw stores bytes under the deck key without validation.
func (s *DeckStore) SaveRaw(ctx context.Context, raw []byte) error {
	query, args := s.builder.Insert(kvTable).
		Columns("name", "value", "updated_at").
		Values(s.key, string(raw), time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// Clear removes the stored collection so the next load seeds again.
func (s *DeckStore) Clear(ctx context.Context) error {
	query, args := s.builder.Delete(kvTable).
		Where(entsql.EQ("name", s.key)).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear %s: %w", s.key, err)
	}
	return nil
}
