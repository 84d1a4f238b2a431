// Package screentest provides fixtures for screen tests.
package screentest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashmaster/internal/deck"
	"github.com/abhisek/flashmaster/internal/logging"
	"github.com/abhisek/flashmaster/internal/screen"
	"github.com/abhisek/flashmaster/internal/store"
)

// Now is the fixed clock used by NewEnv.
var Now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// MemStore is an in-memory deck.Store.
type MemStore struct {
	Decks []deck.Deck
	Saves int
}

func (m *MemStore) Load(context.Context) ([]deck.Deck, error) {
	if m.Decks == nil {
		return nil, deck.ErrNoState
	}
	return append([]deck.Deck(nil), m.Decks...), nil
}

func (m *MemStore) Save(_ context.Context, decks []deck.Deck) error {
	m.Saves++
	m.Decks = append([]deck.Deck(nil), decks...)
	return nil
}

// Events records study sessions in memory. LLM event methods panic.
type Events struct {
	store.EventRepo

	mu       sync.Mutex
	Sessions []store.StudySessionData
}

func (e *Events) AppendStudySession(_ context.Context, data store.StudySessionData) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Sessions = append(e.Sessions, data)
	return nil
}

// QueryStudySessions returns recorded sessions newest first.
func (e *Events) QueryStudySessions(_ context.Context, opts store.QueryOpts) ([]store.StudySessionEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []store.StudySessionEvent
	for i := len(e.Sessions) - 1; i >= 0; i-- {
		data := e.Sessions[i]
		if opts.DeckID != "" && data.DeckID != opts.DeckID {
			continue
		}
		out = append(out, store.StudySessionEvent{
			ID:               i + 1,
			CompletedAt:      Now.Add(-time.Duration(len(e.Sessions)-1-i) * time.Hour),
			StudySessionData: data,
		})
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

// NewEnv builds an Env over decks. A nil decks slice yields the seed
// collection.
func NewEnv(t *testing.T, decks []deck.Deck) (*screen.Env, *MemStore, *Events) {
	t.Helper()

	ms := &MemStore{Decks: decks}
	n := 0
	repo, err := deck.Open(context.Background(), ms,
		deck.WithClock(func() time.Time { return Now }),
		deck.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		deck.WithLogger(logging.Discard()),
	)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}

	events := &Events{}
	return &screen.Env{
		Decks:   repo,
		Events:  events,
		Logger:  logging.Discard(),
		Timeout: time.Second,
	}, ms, events
}

// Key builds a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a key press for a non-printable key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Exec runs cmd and returns its message, or nil for a nil command.
func Exec(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
