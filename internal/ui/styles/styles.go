package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Colors and styles of the active theme, set by ApplyTheme
var (
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color

	App lipgloss.Style

	// Help text
	Help    lipgloss.Style
	HelpKey lipgloss.Style

	MutedText  lipgloss.Style
	ErrorStyle lipgloss.Style

	// Table of contents entries
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemActive   lipgloss.Style

	// Reader styles
	ReaderContent  lipgloss.Style
	ReaderDimmed   lipgloss.Style
	ReaderHeader   lipgloss.Style
	PageTitle      lipgloss.Style
	PageRef        lipgloss.Style
	PageRefFocused lipgloss.Style

	// Chrome
	ProgressFill   lipgloss.Style
	ProgressTrack  lipgloss.Style
	Indicator      lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style

	// Dialog/Modal styles
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
)

// Reading measure in columns for each font class. A larger font means fewer
// characters per line.
const BaseMeasure = 72

var measures = map[string]int{
	"font-small":  90,
	"":            BaseMeasure,
	"font-large":  58,
	"font-xlarge": 48,
}

// Measure returns the line width for a font class. Unknown classes use the
// base measure.
func Measure(class string) int {
	if m, ok := measures[class]; ok {
		return m
	}
	return BaseMeasure
}

// TruncateText shortens s to at most width cells, adding an ellipsis
func TruncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
