package home

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashmaster/internal/deck"
	"github.com/abhisek/flashmaster/internal/ui/components"
	"github.com/abhisek/flashmaster/internal/ui/layout"
	"github.com/abhisek/flashmaster/internal/ui/theme"
)

const heroBlurb = "Import your data and turn raw information into powerful memory aids in seconds. Designed for serious learners."

var quickActions = [...]struct{ title, desc string }{
	rowImport:  {"Import Flashcards", "Paste text or use AI to instantly create new decks."},
	rowLibrary: {"View Library", "Browse, manage, and edit your collection of decks."},
}

func (h *HomeScreen) render(width, height int) string {
	cw := components.ContentWidth(width)
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)

	sections := []string{h.renderHero(cw, compact), h.renderQuickActions(cw), h.renderRecent(cw)}
	content := strings.Join(sections, "\n\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (h *HomeScreen) renderHero(cw int, compact bool) string {
	title := theme.Title.Render("Master Your ") + theme.Highlight.Render("Knowledge")
	start := components.Button{Label: "Start Studying", Focused: h.menu.Selected == rowStart}

	body := title + "\n"
	if !compact {
		body += lipgloss.NewStyle().Foreground(theme.Secondary).Width(cw - 6).Render(heroBlurb) + "\n"
	}
	body += "\n" + start.View()
	return components.Panel(body, cw)
}

func (h *HomeScreen) renderQuickActions(cw int) string {
	half := (cw - 2) / 2
	cards := make([]string, 0, 2)
	for _, row := range []int{rowImport, rowLibrary} {
		a := quickActions[row]
		label := theme.Unselected.Render(a.title)
		if h.menu.Selected == row {
			label = theme.Selected.Render("▸ " + a.title)
		}
		body := label + "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Width(half-6).Render(a.desc)
		cards = append(cards, components.Panel(body, half-2))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards[0], "  ", cards[1])
}

func (h *HomeScreen) renderRecent(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Recent Activity"))
	b.WriteString("  " + theme.Hint.Render("l: view all") + "\n\n")

	if len(h.recent) == 0 {
		b.WriteString(theme.Hint.Render("No decks yet. Import some flashcards to get started."))
		return b.String()
	}

	now := h.now()
	for i, d := range h.recent {
		selected := h.menu.Selected == fixedRows+i
		b.WriteString(recentItem(d, now, selected, cw))
		b.WriteString("\n")
	}
	return b.String()
}

// recentItem renders one deck row: icon, title, status line, mastery bar and
// action label.
func recentItem(d deck.Deck, now time.Time, selected bool, cw int) string {
	icon := lipgloss.NewStyle().Foreground(theme.CategoryColor(d.Category)).Render(categoryIcon(d.Category))

	title := theme.Unselected.Render(d.Title)
	marker := "  "
	if selected {
		title = theme.Selected.Render(d.Title)
		marker = theme.Selected.Render("▸ ")
	}

	action := "Start"
	if d.Studied() {
		action = "Resume"
	}
	btn := theme.Hint.Render(action)
	if selected {
		btn = theme.ButtonActive.Render(action)
	}

	status := theme.Subtitle.Render(statusLine(d, now))
	bar := components.MasteryBar(d.Mastery, 12)

	left := marker + icon + " " + title + "\n     " + status
	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(bar)-lipgloss.Width(btn)-2, 1)
	return lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", gap), bar, "  ", btn)
}

// statusLine is "Last studied 2 hours ago • 85% Mastery" or
// "Not started • 0% Mastery".
func statusLine(d deck.Deck, now time.Time) string {
	studied := "Not started"
	if d.LastStudiedAt != nil {
		studied = "Last studied " + timeAgo(d.LastStudiedAt.Time(), now)
	}
	return fmt.Sprintf("%s • %d%% Mastery", studied, d.Mastery)
}

// timeAgo reports whole days, then whole hours, else "Just now".
func timeAgo(t, now time.Time) string {
	hours := int(now.Sub(t) / time.Hour)
	days := hours / 24
	switch {
	case days > 0:
		return plural(days, "day") + " ago"
	case hours > 0:
		return plural(hours, "hour") + " ago"
	default:
		return "Just now"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func categoryIcon(category string) string {
	switch category {
	case "Science":
		return "⚗"
	case "Language":
		return "✎"
	case "History":
		return "⌛"
	default:
		return "▤"
	}
}
