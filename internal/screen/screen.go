package screen

import (
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashmaster/internal/deck"
	"github.com/abhisek/flashmaster/internal/generate"
	"github.com/abhisek/flashmaster/internal/store"
	"github.com/abhisek/flashmaster/internal/ui/layout"
)

// Kind identifies which view a screen presents.
type Kind int

const (
	Home Kind = iota
	Library
	Study
	Import
	History
)

func (k Kind) String() string {
	switch k {
	case Home:
		return "home"
	case Library:
		return "library"
	case Study:
		return "study"
	case Import:
		return "import"
	case History:
		return "history"
	default:
		return "unknown"
	}
}

// Route is the navigation target a screen represents. DeckID is only set
// for Study.
type Route struct {
	Kind   Kind
	DeckID string
}

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string

	// Route reports the view this screen presents.
	Route() Route
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is an optional interface for screens that cache state and need
// to reload it when they become active again after the screen above them
// is popped.
type Refresher interface {
	Refresh() tea.Cmd
}

// Env holds the dependencies shared by all screens.
type Env struct {
	Decks *deck.Repository

	// Generator is nil when no LLM provider is configured; GeneratorErr
	// then explains why.
	Generator    generate.Generator
	GeneratorErr error

	// Events may be nil, in which case study sessions are not recorded.
	Events store.EventRepo

	Logger *slog.Logger

	// Timeout bounds a single generation request.
	Timeout time.Duration
}
