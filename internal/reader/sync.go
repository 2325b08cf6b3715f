package reader

import (
	"fmt"

	"github.com/justyntemme/folio/pkg/models"
)

// Chrome is everything outside the page body that depends on the current page
type Chrome struct {
	Page         int
	Total        int
	Indicator    string
	Progress     float64 // fill ratio in [0,1]
	PrevDisabled bool
	NextDisabled bool
	ActiveTOC    int // index into the TOC, -1 when no entry targets the page
}

// ChromeOf computes the chrome for state
func ChromeOf(s State, toc []models.TOCEntry) Chrome {
	c := Chrome{
		Page:         s.Current,
		Total:        s.Total,
		Indicator:    fmt.Sprintf("%d / %d", s.Current+1, s.Total),
		PrevDisabled: s.AtFirst(),
		NextDisabled: s.AtLast(),
		ActiveTOC:    -1,
	}
	if s.Total > 0 {
		c.Progress = float64(s.Current+1) / float64(s.Total)
	}
	for i, e := range toc {
		if e.Page == s.Current {
			c.ActiveTOC = i
			break
		}
	}
	return c
}

// Display receives recomputed chrome
type Display interface {
	ShowChrome(Chrome)
}

// Sync keeps the display in step with the pagination state
type Sync struct {
	state   *State
	toc     []models.TOCEntry
	display Display
	last    Chrome
}

// NewSync creates a UI sync for state. display may be nil.
func NewSync(state *State, toc []models.TOCEntry, display Display) *Sync {
	return &Sync{state: state, toc: toc, display: display}
}

// Refresh recomputes the chrome and pushes it to the display
func (s *Sync) Refresh() Chrome {
	s.last = ChromeOf(*s.state, s.toc)
	if s.display != nil {
		s.display.ShowChrome(s.last)
	}
	return s.last
}

// Chrome returns the result of the last Refresh
func (s *Sync) Chrome() Chrome {
	return s.last
}
