// Package library lists every deck in the collection.
package library

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashmaster/internal/deck"
	"github.com/abhisek/flashmaster/internal/router"
	"github.com/abhisek/flashmaster/internal/screen"
	"github.com/abhisek/flashmaster/internal/screens/importdeck"
	studyscreen "github.com/abhisek/flashmaster/internal/screens/study"
	"github.com/abhisek/flashmaster/internal/ui/components"
	"github.com/abhisek/flashmaster/internal/ui/layout"
	"github.com/abhisek/flashmaster/internal/ui/theme"
)

// LibraryScreen shows all decks with their category, size and mastery.
type LibraryScreen struct {
	env  *screen.Env
	menu components.Menu
}

var _ screen.Screen = (*LibraryScreen)(nil)

// New creates a library screen.
func New(env *screen.Env) *LibraryScreen {
	l := &LibraryScreen{env: env}
	l.menu = components.NewMenu(l.items())
	return l
}

func (l *LibraryScreen) items() []components.MenuItem {
	decks := l.env.Decks.Decks()
	items := make([]components.MenuItem, 0, len(decks))
	for _, d := range decks {
		items = append(items, components.MenuItem{
			Label:  d.Title,
			Detail: deckDetail(d),
			Action: func() tea.Cmd {
				return router.Push(studyscreen.New(l.env, d.ID))
			},
		})
	}
	return items
}

func deckDetail(d deck.Deck) string {
	category := d.Category
	if category == "" {
		category = deck.DefaultCategory
	}
	mastery := lipgloss.NewStyle().
		Foreground(theme.MasteryColor(d.Mastery)).
		Render(fmt.Sprintf("Mastery: %d%%", d.Mastery))

	return components.Badge(category, theme.CategoryColor(category)) + "  " +
		theme.Subtitle.Render(fmt.Sprintf("%d cards", len(d.Cards))) + "  " +
		mastery
}

func (l *LibraryScreen) Init() tea.Cmd {
	return nil
}

// Refresh reloads the deck list after returning from a study or import.
func (l *LibraryScreen) Refresh() tea.Cmd {
	l.menu.SetItems(l.items())
	return nil
}

func (l *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "n" {
		return l, router.Push(importdeck.New(l.env))
	}

	var cmd tea.Cmd
	l.menu, cmd = l.menu.Update(msg)
	return l, cmd
}

func (l *LibraryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	heading := theme.Title.Render("Your Decks")
	create := components.Button{Label: "+ Create New  n"}.View()
	gap := max(cw-lipgloss.Width(heading)-lipgloss.Width(create), 1)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, heading, strings.Repeat(" ", gap), create))
	b.WriteString("\n\n")

	if len(l.menu.Items) == 0 {
		b.WriteString(theme.Hint.Render("No decks found. Try creating one!"))
		return components.Center(b.String(), width, height)
	}

	b.WriteString(l.menu.View())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+b.String())
}

func (l *LibraryScreen) Title() string {
	return "Library"
}

func (l *LibraryScreen) Route() screen.Route {
	return screen.Route{Kind: screen.Library}
}

func (l *LibraryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Select"},
		{Key: "Enter", Description: "Study"},
		{Key: "n", Description: "Create New"},
		{Key: "Esc", Description: "Back"},
	}
}
