// Package render provides markdown rendering of bot replies for terminal output.
package render

import "github.com/charmbracelet/lipgloss"

// Styles
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
)

// Options configures the markdown renderer behavior.
type Options struct {
	// Width defines the maximum output width (default: 80)
	Width int

	// Style is "dark", "light" or "auto"
	Style string
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width: 80,
		Style: StyleAuto,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// ResolveStyle turns "auto" into "dark" or "light" from the terminal background.
func ResolveStyle(style string) string {
	switch style {
	case StyleDark, StyleLight:
		return style
	default:
		if lipgloss.HasDarkBackground() {
			return StyleDark
		}
		return StyleLight
	}
}

// Toggle flips between the dark and light style.
func Toggle(style string) string {
	if ResolveStyle(style) == StyleDark {
		return StyleLight
	}
	return StyleDark
}
