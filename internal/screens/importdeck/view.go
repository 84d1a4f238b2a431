package importdeck

import (
	"strings"

	"github.com/abhisek/flashmaster/internal/ui/components"
	"github.com/abhisek/flashmaster/internal/ui/theme"
)

func (s *ImportScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.title.SetWidth(cw - 6)
	s.text.SetWidth(cw - 4)

	var b strings.Builder
	b.WriteString(theme.Title.Render("✦ Import with AI") + "\n")
	b.WriteString(theme.Subtitle.Render("Paste any text, and the AI will extract flashcards for you.") + "\n\n")

	b.WriteString(s.title.View() + "\n\n")

	label := theme.Label.Render("Source Text")
	if s.focus == fieldText {
		label = theme.Highlight.Render("Source Text")
	}
	b.WriteString(label + "\n")
	b.WriteString(s.text.View() + "\n\n")

	if s.errMsg != "" {
		b.WriteString(theme.ErrorText.Render("⚠ "+s.errMsg) + "\n\n")
	}

	b.WriteString(s.submit.View())
	if s.processing {
		b.WriteString("  " + theme.Hint.Render("Extracting flashcards, this can take a moment..."))
	}

	return components.Center(components.Panel(b.String(), cw), width, height)
}
