package history

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashmaster/internal/router"
	"github.com/abhisek/flashmaster/internal/screen"
	"github.com/abhisek/flashmaster/internal/screen/screentest"
	"github.com/abhisek/flashmaster/internal/store"
)

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	msg := screentest.Exec(s.Init())
	if _, ok := msg.(loadedMsg); !ok {
		t.Fatalf("Init produced %T, want loadedMsg", msg)
	}
	s.Update(msg)
}

func TestEmptyHistory(t *testing.T) {
	env, _, _ := screentest.NewEnv(t, nil)
	s := New(env)

	if !strings.Contains(s.View(80, 20), "Loading history") {
		t.Error("expected loading text before Init completes")
	}
	load(t, s)
	if !strings.Contains(s.View(80, 20), "No study sessions yet") {
		t.Error("expected empty state")
	}
}

func TestNilEventsLoadsEmpty(t *testing.T) {
	env, _, _ := screentest.NewEnv(t, nil)
	env.Events = nil
	s := New(env)
	load(t, s)

	if len(s.sessions) != 0 || s.errMsg != "" {
		t.Errorf("expected empty history, got %d sessions, err %q", len(s.sessions), s.errMsg)
	}
}

func TestListsSessionsNewestFirst(t *testing.T) {
	env, _, events := screentest.NewEnv(t, nil)
	events.Sessions = []store.StudySessionData{
		{DeckID: "1", DeckTitle: "Biology 101 - Cell Structure", Correct: 1, Total: 2, Mastery: 50},
		{DeckID: "2", DeckTitle: "Spanish Vocabulary - Week 4", Correct: 2, Total: 2, Mastery: 100},
	}
	s := New(env)
	load(t, s)

	if len(s.menu.Items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(s.menu.Items))
	}
	if s.menu.Items[0].Label != "Spanish Vocabulary - Week 4" {
		t.Errorf("expected newest session first, got %q", s.menu.Items[0].Label)
	}

	view := s.View(100, 30)
	for _, want := range []string{"Study History", "2/2 correct", "Mastery 50%", "2 sessions · 75% of cards mastered"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEnterStudiesDeckAgain(t *testing.T) {
	env, _, events := screentest.NewEnv(t, nil)
	events.Sessions = []store.StudySessionData{{DeckID: "2", DeckTitle: "Spanish", Correct: 1, Total: 2, Mastery: 50}}
	s := New(env)
	load(t, s)

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	push, ok := screentest.Exec(cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if got := push.Screen.Route(); got.Kind != screen.Study || got.DeckID != "2" {
		t.Errorf("expected study(2), got %v(%s)", got.Kind, got.DeckID)
	}
}

func TestDeletedDeckIsDisabled(t *testing.T) {
	env, _, events := screentest.NewEnv(t, nil)
	events.Sessions = []store.StudySessionData{{DeckID: "gone", DeckTitle: "Old deck", Correct: 0, Total: 1}}
	s := New(env)
	load(t, s)

	if !s.menu.Items[0].Disabled {
		t.Error("expected session for a missing deck to be disabled")
	}
	if _, cmd := s.Update(screentest.Special(tea.KeyEnter)); cmd != nil {
		t.Error("expected no command for a deleted deck")
	}
	if !strings.Contains(s.View(100, 30), "deleted") {
		t.Error("expected deleted marker")
	}
}

func TestRefreshReloads(t *testing.T) {
	env, _, events := screentest.NewEnv(t, nil)
	s := New(env)
	load(t, s)

	events.Sessions = append(events.Sessions, store.StudySessionData{DeckID: "1", DeckTitle: "Bio", Correct: 2, Total: 2, Mastery: 100})
	s.Update(screentest.Exec(s.Refresh()))

	if len(s.sessions) != 1 {
		t.Errorf("expected 1 session after refresh, got %d", len(s.sessions))
	}
	if s.Route().Kind != screen.History {
		t.Errorf("unexpected route %v", s.Route())
	}
}
