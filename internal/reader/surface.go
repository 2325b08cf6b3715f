package reader

// Surface is the presentation collaborator that owns the page elements
type Surface interface {
	MarkActive(page int)
	MarkExiting(page int, dir Direction)
	// SetTransient gives page a temporary horizontal offset and opacity
	SetTransient(page int, offset int, opacity float64)
	ResetScroll(page int)
	// ClearTransition removes exit markers and transient styling from page
	ClearTransition(page int)
}

type nopSurface struct{}

func (nopSurface) MarkActive(int)                 {}
func (nopSurface) MarkExiting(int, Direction)     {}
func (nopSurface) SetTransient(int, int, float64) {}
func (nopSurface) ResetScroll(int)                {}
func (nopSurface) ClearTransition(int)            {}
