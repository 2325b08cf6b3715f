// Package reader holds the page-navigation and UI-state controller. It has no
// terminal dependencies: rendering, timers and persistence are injected.
package reader

import "fmt"

// Direction is the way a page transition travels
type Direction int

const (
	// DirAuto lets the navigator infer the direction from the page indexes
	DirAuto Direction = iota
	DirNext
	DirPrev
)

// String returns the name of the direction
func (d Direction) String() string {
	switch d {
	case DirNext:
		return "next"
	case DirPrev:
		return "prev"
	default:
		return "auto"
	}
}

// State is the pagination state of an open book.
// Invariant: 0 <= Current < Total. Total never changes after NewState.
type State struct {
	Current   int
	Total     int
	Animating bool
}

// NewState creates the state for a book of total pages, positioned on the first page
func NewState(total int) (*State, error) {
	if total <= 0 {
		return nil, fmt.Errorf("page count must be positive, got %d", total)
	}
	return &State{Total: total}, nil
}

// InRange reports whether page is a valid index
func (s State) InRange(page int) bool {
	return page >= 0 && page < s.Total
}

// AtFirst reports whether the first page is current
func (s State) AtFirst() bool {
	return s.Current == 0
}

// AtLast reports whether the last page is current
func (s State) AtLast() bool {
	return s.Current == s.Total-1
}
