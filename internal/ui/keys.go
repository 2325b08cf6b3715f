package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all application key bindings
type KeyMap struct {
	// Navigation
	Left  key.Binding
	Up    key.Binding
	Right key.Binding
	Down  key.Binding

	// Page body
	Scroll   key.Binding
	NextLink key.Binding
	PrevLink key.Binding

	// Actions
	Enter  key.Binding
	Escape key.Binding
	Quit   key.Binding
	Help   key.Binding

	// Contents cursor, active while the contents are open
	TOCNext key.Binding
	TOCPrev key.Binding

	// Chrome
	TOC      key.Binding
	Theme    key.Binding
	FontUp   key.Binding
	FontDown key.Binding
}

// DefaultKeyMap returns the default vim-like key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev page"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next page"),
		),
		// Handled by the reader view, listed for help only
		Scroll: key.NewBinding(
			key.WithKeys("pgup", "pgdown", "ctrl+u", "ctrl+d", " "),
			key.WithHelp("PgUp/PgDn", "scroll"),
		),
		NextLink: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next link"),
		),
		PrevLink: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "prev link"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		TOCNext: key.NewBinding(
			key.WithKeys("tab", "ctrl+n"),
			key.WithHelp("Tab", "next entry"),
		),
		TOCPrev: key.NewBinding(
			key.WithKeys("shift+tab", "ctrl+p"),
			key.WithHelp("S-Tab", "prev entry"),
		),
		TOC: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "contents"),
		),
		Theme: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "theme"),
		),
		FontUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "larger"),
		),
		FontDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "smaller"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.TOC, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Up, k.Right, k.Down, k.Scroll},
		{k.NextLink, k.PrevLink, k.Enter, k.TOC, k.Escape},
		{k.TOCNext, k.TOCPrev},
		{k.Theme, k.FontUp, k.FontDown, k.Help, k.Quit},
	}
}
