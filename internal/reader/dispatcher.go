package reader

import (
	"math"

	"go.uber.org/zap"

	"github.com/justyntemme/folio/pkg/models"
)

// Overlay is the state of the table of contents overlay
type Overlay int

const (
	TocClosed Overlay = iota
	TocOpen
)

// String returns the name of the overlay state
func (o Overlay) String() string {
	if o == TocOpen {
		return "TocOpen"
	}
	return "TocClosed"
}

// Key is a keyboard input the dispatcher understands
type Key int

const (
	KeyLeft Key = iota
	KeyUp
	KeyRight
	KeyDown
	KeyEscape
)

// Control is a clickable control in the reader chrome
type Control int

const (
	ControlPrev Control = iota
	ControlNext
	ControlTOCToggle
	ControlTOCClose
	ControlBackdrop
	ControlTheme
	ControlFontDecrease
	ControlFontIncrease
)

// DefaultSwipeThreshold is the minimum horizontal travel of a swipe
const DefaultSwipeThreshold = 60

// Dispatcher maps input events onto navigation and preference actions
type Dispatcher struct {
	nav   *Navigator
	prefs *Preferences
	sync  *Sync
	log   *zap.Logger

	overlay   Overlay
	threshold float64

	touching       bool
	touchX, touchY float64
}

// NewDispatcher creates a dispatcher in the TocClosed state
func NewDispatcher(nav *Navigator, prefs *Preferences, sync *Sync, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		nav:       nav,
		prefs:     prefs,
		sync:      sync,
		log:       log,
		threshold: DefaultSwipeThreshold,
	}
}

// SetSwipeThreshold changes the minimum swipe distance. Non-positive values are ignored.
func (d *Dispatcher) SetSwipeThreshold(v float64) {
	if v > 0 {
		d.threshold = v
	}
}

// Overlay returns the TOC overlay state
func (d *Dispatcher) Overlay() Overlay {
	return d.overlay
}

// Key handles a keyboard event
func (d *Dispatcher) Key(k Key) {
	switch k {
	case KeyLeft, KeyUp:
		d.nav.Prev()
	case KeyRight, KeyDown:
		d.nav.Next()
	case KeyEscape:
		d.closeTOC()
	}
}

// Click handles a click on a chrome control
func (d *Dispatcher) Click(c Control) {
	switch c {
	case ControlPrev:
		d.nav.Prev()
	case ControlNext:
		d.nav.Next()
	case ControlTOCToggle:
		if d.overlay == TocOpen {
			d.closeTOC()
		} else {
			d.overlay = TocOpen
		}
	case ControlTOCClose, ControlBackdrop:
		d.closeTOC()
	case ControlTheme:
		d.prefs.ToggleTheme()
		d.sync.Refresh()
	case ControlFontDecrease:
		d.prefs.AdjustFontLevel(-1)
		d.sync.Refresh()
	case ControlFontIncrease:
		d.prefs.AdjustFontLevel(1)
		d.sync.Refresh()
	}
}

// ClickTOCEntry jumps to the entry's page and closes the overlay. The
// direction is inferred from the page indexes.
func (d *Dispatcher) ClickTOCEntry(e models.TOCEntry) {
	d.nav.GoTo(e.Page, DirAuto)
	d.closeTOC()
}

// ClickPageRef follows a link embedded in page content. The overlay is left as is.
func (d *Dispatcher) ClickPageRef(r models.PageRef) {
	d.nav.GoTo(r.Page, DirAuto)
}

// TouchStart records where a gesture began
func (d *Dispatcher) TouchStart(x, y float64) {
	d.touching = true
	d.touchX, d.touchY = x, y
}

// TouchEnd turns a dominant horizontal gesture longer than the threshold
// into a page turn. Short, vertical or ambiguous gestures do nothing.
func (d *Dispatcher) TouchEnd(x, y float64) {
	if !d.touching {
		return
	}
	d.touching = false

	dx, dy := x-d.touchX, y-d.touchY
	if math.Abs(dx) <= math.Abs(dy) || math.Abs(dx) <= d.threshold {
		d.log.Debug("Gesture ignored", zap.Float64("dx", dx), zap.Float64("dy", dy))
		return
	}
	if dx < 0 {
		d.nav.Next()
	} else {
		d.nav.Prev()
	}
}

func (d *Dispatcher) closeTOC() {
	d.overlay = TocClosed
}
