package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary   = lipgloss.Color("#2B8CEE") // Blue
	Secondary = lipgloss.Color("#92ADC9") // Steel
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Purple    = lipgloss.Color("#A855F7")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#637588")
	BgDark    = lipgloss.Color("#111A22")
	BgCard    = lipgloss.Color("#192633")
	Border    = lipgloss.Color("#324D67")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Highlight = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Containers
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	CardFlipped = lipgloss.NewStyle().
			Background(BgDark).
			Border(lipgloss.ThickBorder()).
			BorderForeground(Primary).
			Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Buttons
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	ButtonDisabled = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// MasteryColor is green above 70, orange above 30, dim otherwise.
func MasteryColor(mastery int) color.Color {
	switch {
	case mastery > 70:
		return Success
	case mastery > 30:
		return Accent
	default:
		return TextDim
	}
}

// MasteryBarColor colours the recent-activity bars: green above 60,
// orange otherwise.
func MasteryBarColor(mastery int) color.Color {
	if mastery > 60 {
		return Success
	}
	return Accent
}

// CategoryColor returns the badge colour of a deck category.
func CategoryColor(category string) color.Color {
	switch category {
	case "Science":
		return Primary
	case "Language":
		return Accent
	case "History":
		return Purple
	default:
		return Success
	}
}
