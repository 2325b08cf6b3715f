package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/folio/internal/reader"
)

// View is the interface that all views must implement
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// TargetKind says what lies under a screen cell
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetControl
	TargetTOCEntry
	TargetPageRef
)

// String returns the name of the target kind
func (k TargetKind) String() string {
	switch k {
	case TargetControl:
		return "control"
	case TargetTOCEntry:
		return "toc-entry"
	case TargetPageRef:
		return "page-ref"
	default:
		return "none"
	}
}

// Target is the clickable thing at a screen position. Index refers to the
// book's TOC for TargetTOCEntry and to the current page's refs for TargetPageRef.
type Target struct {
	Kind    TargetKind
	Control reader.Control
	Index   int
}

// zone is a clickable span on a single row, x0 inclusive and x1 exclusive
type zone struct {
	x0, x1, y int
	target    Target
}

func hit(zones []zone, x, y int) Target {
	for _, z := range zones {
		if z.y == y && x >= z.x0 && x < z.x1 {
			return z.target
		}
	}
	return Target{}
}
