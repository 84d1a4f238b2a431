package study

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/flashmaster/internal/study"
	"github.com/abhisek/flashmaster/internal/ui/components"
	"github.com/abhisek/flashmaster/internal/ui/theme"
)

func (s *StudyScreen) renderCard(width, height int) string {
	cw := components.ContentWidth(width)
	st := s.session.State()

	var b strings.Builder

	counter := theme.Subtitle.Render(fmt.Sprintf("Card %d of %d", st.Index+1, s.session.Total()))
	b.WriteString(counter + "\n")
	b.WriteString(components.NewProgressBar("", s.session.Progress(), false, cw).View())
	b.WriteString("\n\n")

	card := s.session.Card()
	if st.Side == sess.SideAnswer {
		b.WriteString(components.Flashcard("ANSWER", card.Answer, "", cw, true))
		b.WriteString("\n\n")
		learning := components.Button{Label: "✗ Still Learning  n"}
		mastered := components.Button{Label: "✓ Mastered  y", Focused: true}
		b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center,
			components.Row(learning.View(), mastered.View())))
	} else {
		b.WriteString(components.Flashcard("QUESTION", card.Question, "Press space to reveal answer", cw, false))
	}

	return components.Center(b.String(), width, height)
}

func (s *StudyScreen) renderComplete(width, height int) string {
	cw := components.ContentWidth(width)

	headline := "Session complete!"
	if s.mastery == 100 {
		headline = "Perfect round!"
	}

	score := lipgloss.NewStyle().
		Foreground(theme.MasteryColor(s.mastery)).
		Bold(true).
		Render(fmt.Sprintf("%d%% Mastery", s.mastery))

	body := theme.Title.Render(headline) + "\n\n" +
		theme.Body.Render(s.deck.Title) + "\n\n" +
		score + "\n" +
		theme.Subtitle.Render(fmt.Sprintf("%d of %d cards mastered", s.session.Correct(), s.session.Total())) + "\n\n" +
		components.MasteryBar(s.mastery, cw-8) + "\n\n" +
		theme.Hint.Render("enter: back to dashboard   r: study again")

	return components.Center(components.Panel(
		lipgloss.NewStyle().Width(cw-4).Align(lipgloss.Center).Render(body), cw), width, height)
}

func (s *StudyScreen) renderUnavailable(width, height int) string {
	msg := "This deck could not be found."
	if errors.Is(s.loadErr, sess.ErrEmptyDeck) {
		msg = "This deck has no cards to study."
	}
	return components.Center(
		theme.ErrorText.Render(msg)+"\n\n"+theme.Hint.Render("enter: back to dashboard"),
		width, height)
}
