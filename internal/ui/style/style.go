// Package style holds the colours and glyphs shared by the terminal renderers.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Channel  = lipgloss.Color("#0E7490")
	Slate    = lipgloss.Color("#667085")
	Buoy     = lipgloss.Color("#D93025")
	Marker   = lipgloss.Color("#22A06B")
	Amber    = lipgloss.Color("#F59E0B")
	Headline = lipgloss.Color("#0B0F19")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Lock    = "⊟"
	Bridge  = "⌒"
	Pending = "○"
)

// TierColor picks the colour used for a tier outcome.
func TierColor(won bool) lipgloss.Color {
	if won {
		return Marker
	}
	return Amber
}
