package styles

import "github.com/charmbracelet/lipgloss"

// Theme represents a color scheme for the reader
type Theme struct {
	Name string

	// Core colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color

	// Semantic colors
	Error lipgloss.Color
	Muted lipgloss.Color

	// UI element colors
	Border        lipgloss.Color
	Selection     lipgloss.Color
	SelectionText lipgloss.Color
	Link          lipgloss.Color
	Track         lipgloss.Color
}

// Built-in themes, named after the stored theme preference
var (
	// LightTheme is the default
	LightTheme = Theme{
		Name:          "light",
		Primary:       lipgloss.Color("#C2410C"),
		Secondary:     lipgloss.Color("#1E3A5F"),
		Background:    lipgloss.Color("#FFFBF5"),
		Foreground:    lipgloss.Color("#1F2937"),
		Error:         lipgloss.Color("#DC2626"),
		Muted:         lipgloss.Color("#9CA3AF"),
		Border:        lipgloss.Color("#E5E7EB"),
		Selection:     lipgloss.Color("#C2410C"),
		SelectionText: lipgloss.Color("#FFFFFF"),
		Link:          lipgloss.Color("#2563EB"),
		Track:         lipgloss.Color("#E5E7EB"),
	}

	DarkTheme = Theme{
		Name:          "dark",
		Primary:       lipgloss.Color("#F97316"),
		Secondary:     lipgloss.Color("#93C5FD"),
		Background:    lipgloss.Color("#111827"),
		Foreground:    lipgloss.Color("#F3F4F6"),
		Error:         lipgloss.Color("#F87171"),
		Muted:         lipgloss.Color("#6B7280"),
		Border:        lipgloss.Color("#374151"),
		Selection:     lipgloss.Color("#F97316"),
		SelectionText: lipgloss.Color("#111827"),
		Link:          lipgloss.Color("#60A5FA"),
		Track:         lipgloss.Color("#374151"),
	}

	// currentTheme holds the active theme
	currentTheme = LightTheme
)

// GetTheme returns a theme by name, or the light theme if not found
func GetTheme(name string) Theme {
	if name == DarkTheme.Name {
		return DarkTheme
	}
	return LightTheme
}

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetCurrentTheme sets the active theme by name
func SetCurrentTheme(name string) {
	currentTheme = GetTheme(name)
	ApplyTheme(currentTheme)
}

// ApplyTheme updates all global styles to use the given theme's colors
func ApplyTheme(theme Theme) {
	Primary = theme.Primary
	Secondary = theme.Secondary
	Error = theme.Error
	Muted = theme.Muted
	Background = theme.Background
	Foreground = theme.Foreground
	Border = theme.Border

	App = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Background)

	Help = lipgloss.NewStyle().
		Foreground(theme.Muted)

	HelpKey = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	MutedText = lipgloss.NewStyle().
		Foreground(theme.Muted)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Padding(0, 1)

	ListItem = lipgloss.NewStyle().
		Foreground(theme.Foreground)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Selection).
		Bold(true)

	ListItemActive = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	ReaderContent = lipgloss.NewStyle().
		Foreground(theme.Foreground)

	ReaderDimmed = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Faint(true)

	ReaderHeader = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	PageTitle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	PageRef = lipgloss.NewStyle().
		Foreground(theme.Link).
		Underline(true)

	PageRefFocused = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Link).
		Bold(true)

	ProgressFill = lipgloss.NewStyle().
		Foreground(theme.Primary)

	ProgressTrack = lipgloss.NewStyle().
		Foreground(theme.Track)

	Indicator = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	Button = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Border).
		Padding(0, 1)

	ButtonDisabled = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 1).
		Faint(true)
}

// init applies the default theme on package load
func init() {
	ApplyTheme(LightTheme)
}
