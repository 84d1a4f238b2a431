// Package history lists completed study sessions.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashmaster/internal/router"
	"github.com/abhisek/flashmaster/internal/screen"
	studyscreen "github.com/abhisek/flashmaster/internal/screens/study"
	"github.com/abhisek/flashmaster/internal/store"
	"github.com/abhisek/flashmaster/internal/ui/components"
	"github.com/abhisek/flashmaster/internal/ui/layout"
	"github.com/abhisek/flashmaster/internal/ui/theme"
)

// Limit caps the number of sessions loaded.
const Limit = 50

type loadedMsg struct {
	sessions []store.StudySessionEvent
	err      error
}

// HistoryScreen displays past study sessions, newest first.
type HistoryScreen struct {
	env      *screen.Env
	menu     components.Menu
	sessions []store.StudySessionEvent
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a history screen. Sessions load on Init.
func New(env *screen.Env) *HistoryScreen {
	return &HistoryScreen{env: env}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.env.Events
	return func() tea.Msg {
		if events == nil {
			return loadedMsg{}
		}
		sessions, err := events.QueryStudySessions(context.Background(), store.QueryOpts{Limit: Limit})
		return loadedMsg{sessions: sessions, err: err}
	}
}

// Refresh reloads after a study session started from this screen ends.
func (s *HistoryScreen) Refresh() tea.Cmd {
	return s.Init()
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) Route() screen.Route {
	return screen.Route{Kind: screen.History}
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Study again"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		s.loaded = true
		if msg.err != nil {
			s.env.Logger.Warn("load study history", "err", msg.err)
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.sessions = msg.sessions
		s.menu.SetItems(s.items())
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HistoryScreen) items() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(s.sessions))
	for _, e := range s.sessions {
		_, exists := s.env.Decks.FindDeck(e.DeckID)
		detail := fmt.Sprintf("%s  ·  %d/%d correct  ·  Mastery %d%%",
			e.CompletedAt.Local().Format("Jan 02, 2006 15:04"), e.Correct, e.Total, e.Mastery)
		if !exists {
			detail += "  ·  deleted"
		}
		id := e.DeckID
		items = append(items, components.MenuItem{
			Label:    e.DeckTitle,
			Detail:   detail,
			Disabled: !exists,
			Action: func() tea.Cmd {
				return router.Push(studyscreen.New(s.env, id))
			},
		})
	}
	return items
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	switch {
	case s.errMsg != "":
		return "\n\n" + center(theme.ErrorText.Render("Error: "+s.errMsg))
	case !s.loaded:
		return "\n\n" + center(theme.Hint.Render("Loading history..."))
	case len(s.sessions) == 0:
		return "\n\n" + center(theme.Hint.Render("No study sessions yet. Finish a deck to see it here."))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Title.Render("Study History")))
	b.WriteString("\n\n")
	b.WriteString(center(s.menu.View()))
	b.WriteString("\n\n")
	b.WriteString(center(theme.Hint.Render(summary(s.sessions))))
	return b.String()
}

// summary describes the loaded sessions in one line.
func summary(sessions []store.StudySessionEvent) string {
	var correct, total int
	for _, e := range sessions {
		correct += e.Correct
		total += e.Total
	}
	pct := 0
	if total > 0 {
		pct = correct * 100 / total
	}
	last := sessions[0].CompletedAt.Local().Format(time.DateOnly)
	return fmt.Sprintf("%d sessions · %d%% of cards mastered · last on %s", len(sessions), pct, last)
}
