// Package tui provides the terminal chat interface.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/longkey1/finchat/internal/render"
)

// palette holds the colors of one color mode
type palette struct {
	Background lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color
	User       lipgloss.Color
	Text       lipgloss.Color
	TextDim    lipgloss.Color
}

var (
	darkPalette = palette{
		Background: lipgloss.Color("#171923"),
		Border:     lipgloss.Color("#4A5568"),
		Accent:     lipgloss.Color("#63B3ED"),
		User:       lipgloss.Color("#68D391"),
		Text:       lipgloss.Color("#F7FAFC"),
		TextDim:    lipgloss.Color("#A0AEC0"),
	}
	lightPalette = palette{
		Background: lipgloss.Color("#FFFFFF"),
		Border:     lipgloss.Color("#E2E8F0"),
		Accent:     lipgloss.Color("#3182CE"),
		User:       lipgloss.Color("#2F855A"),
		Text:       lipgloss.Color("#1A202C"),
		TextDim:    lipgloss.Color("#718096"),
	}
)

// styles is the set of lipgloss styles for one color mode
type styles struct {
	mode string

	header       lipgloss.Style
	title        lipgloss.Style
	subtitle     lipgloss.Style
	messagesArea lipgloss.Style
	userLabel    lipgloss.Style
	userBubble   lipgloss.Style
	botLabel     lipgloss.Style
	botBubble    lipgloss.Style
	inputPanel   lipgloss.Style
	inputLabel   lipgloss.Style
	loading      lipgloss.Style
	statusBar    lipgloss.Style
	statusKey    lipgloss.Style
	statusDesc   lipgloss.Style
	welcome      lipgloss.Style
	welcomeTitle lipgloss.Style
	topicItem    lipgloss.Style
	topicCursor  lipgloss.Style
	textPrimary  lipgloss.Style
	textDim      lipgloss.Style
}

// newStyles builds the styles for "dark" or "light"; "auto" is resolved first.
func newStyles(mode string) styles {
	mode = render.ResolveStyle(mode)
	p := darkPalette
	if mode == render.StyleLight {
		p = lightPalette
	}

	return styles{
		mode: mode,

		header: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 2),
		title: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		subtitle: lipgloss.NewStyle().
			Foreground(p.TextDim),
		messagesArea: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		userLabel: lipgloss.NewStyle().
			Foreground(p.User).
			Bold(true),
		userBubble: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.User).
			Foreground(p.Text).
			Padding(0, 1),
		botLabel: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		botBubble: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		inputPanel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		inputLabel: lipgloss.NewStyle().
			Foreground(p.User).
			Bold(true),
		loading: lipgloss.NewStyle().
			Foreground(p.Accent),
		statusBar: lipgloss.NewStyle().
			Foreground(p.TextDim),
		statusKey: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		statusDesc: lipgloss.NewStyle().
			Foreground(p.TextDim),
		welcome: lipgloss.NewStyle().
			Foreground(p.TextDim).
			Align(lipgloss.Center),
		welcomeTitle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true).
			Align(lipgloss.Center),
		topicItem: lipgloss.NewStyle().
			Foreground(p.Text).
			PaddingLeft(2),
		topicCursor: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		textPrimary: lipgloss.NewStyle().
			Foreground(p.Text),
		textDim: lipgloss.NewStyle().
			Foreground(p.TextDim),
	}
}
