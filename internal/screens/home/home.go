// Package home is the dashboard shown at startup.
package home

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashmaster/internal/deck"
	"github.com/abhisek/flashmaster/internal/router"
	"github.com/abhisek/flashmaster/internal/screen"
	"github.com/abhisek/flashmaster/internal/screens/history"
	"github.com/abhisek/flashmaster/internal/screens/importdeck"
	"github.com/abhisek/flashmaster/internal/screens/library"
	studyscreen "github.com/abhisek/flashmaster/internal/screens/study"
	"github.com/abhisek/flashmaster/internal/ui/components"
	"github.com/abhisek/flashmaster/internal/ui/layout"
)

// RecentLimit is the number of decks listed under Recent Activity.
const RecentLimit = 5

// Fixed menu rows above the recent decks.
const (
	rowStart = iota
	rowImport
	rowLibrary
	fixedRows
)

// HomeScreen is the main dashboard of the application.
type HomeScreen struct {
	env    *screen.Env
	menu   components.Menu
	recent []deck.Deck
	now    func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env, now: time.Now}
	h.reload()
	return h
}

func (h *HomeScreen) reload() {
	h.recent = h.env.Decks.Recent(RecentLimit)

	items := []components.MenuItem{
		rowStart:   {Label: "Start Studying", Action: h.startStudying},
		rowImport:  {Label: "Import Flashcards", Action: h.openImport},
		rowLibrary: {Label: "View Library", Action: h.openLibrary},
	}
	for _, d := range h.recent {
		items = append(items, components.MenuItem{
			Label: d.Title,
			Action: func() tea.Cmd {
				return router.Push(studyscreen.New(h.env, d.ID))
			},
		})
	}

	h.menu.SetItems(items)
}

// startStudying opens the first deck, or the import dialog when there are
// no decks yet.
func (h *HomeScreen) startStudying() tea.Cmd {
	decks := h.env.Decks.Recent(1)
	if len(decks) == 0 {
		return h.openImport()
	}
	return router.Push(studyscreen.New(h.env, decks[0].ID))
}

func (h *HomeScreen) openImport() tea.Cmd {
	return router.Push(importdeck.New(h.env))
}

func (h *HomeScreen) openLibrary() tea.Cmd {
	return router.Push(library.New(h.env))
}

func (h *HomeScreen) openHistory() tea.Cmd {
	return router.Push(history.New(h.env))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Refresh reloads recent decks when the dashboard becomes active again.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.reload()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "s":
			return h, h.startStudying()
		case "i":
			return h, h.openImport()
		case "l":
			return h, h.openLibrary()
		case "h":
			return h, h.openHistory()
		case "q":
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	return h.render(width, height)
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

func (h *HomeScreen) Route() screen.Route {
	return screen.Route{Kind: screen.Home}
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Select"},
		{Key: "Enter", Description: "Open"},
		{Key: "s", Description: "Study"},
		{Key: "i", Description: "Import"},
		{Key: "l", Description: "Library"},
		{Key: "h", Description: "History"},
		{Key: "q", Description: "Quit"},
	}
}
