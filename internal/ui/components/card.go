package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashmaster/internal/ui/theme"
)

// ContentWidth returns the inner width used for centered content columns.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Center places content in the middle of the given area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Panel wraps content in a rounded-border card at the given content width.
func Panel(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 2).
		Render(content)
}

// Flashcard renders one face of a card. The answer face uses the flipped
// style so the two sides are distinguishable at a glance.
func Flashcard(label, text, hint string, cw int, answer bool) string {
	style := theme.Card
	labelStyle := theme.Label
	if answer {
		style = theme.CardFlipped
		labelStyle = theme.Highlight
	}

	body := labelStyle.Render(label) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw-4).Align(lipgloss.Center).Render(text)
	if hint != "" {
		body += "\n\n" + theme.Hint.Render(hint)
	}

	return style.
		Width(cw).
		Align(lipgloss.Center).
		Render(body)
}

// Badge renders a short coloured tag.
func Badge(text string, c color.Color) string {
	return lipgloss.NewStyle().
		Foreground(c).
		Bold(true).
		Render("[" + text + "]")
}
