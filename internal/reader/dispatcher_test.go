package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/folio/pkg/models"
)

func TestSwipeLeftOnTenPageBook(t *testing.T) {
	f := newFixture(t, 10)
	d := f.ctrl.Dispatcher

	d.TouchStart(200, 100)
	d.TouchEnd(120, 105) // dx=-80, dy=5

	assert.Equal(t, 1, f.ctrl.Navigator.State().Current)
	assert.InDelta(t, 0.2, f.ctrl.Sync.Chrome().Progress, 1e-9)
}

func TestSwipeGestures(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   int
	}{
		{"swipe left", -80, 5, 3},
		{"swipe right", 80, -5, 1},
		{"exactly threshold", -60, 0, 2},
		{"short", 30, 0, 2},
		{"vertical", -80, 120, 2},
		{"diagonal tie", -90, 90, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 5)
			require.True(t, f.ctrl.Navigator.GoTo(2, DirAuto))
			f.sched.Advance(TransitionDuration)

			f.ctrl.Dispatcher.TouchStart(100, 100)
			f.ctrl.Dispatcher.TouchEnd(100+tt.dx, 100+tt.dy)
			assert.Equal(t, tt.want, f.ctrl.Navigator.State().Current)
		})
	}
}

func TestTouchEndWithoutStartIgnored(t *testing.T) {
	f := newFixture(t, 5)
	f.ctrl.Dispatcher.TouchEnd(-500, 0)
	assert.Equal(t, 0, f.ctrl.Navigator.State().Current)
}

func TestCustomSwipeThreshold(t *testing.T) {
	f := newFixture(t, 5)
	d := f.ctrl.Dispatcher
	d.SetSwipeThreshold(100)
	d.SetSwipeThreshold(-1) // ignored

	d.TouchStart(0, 0)
	d.TouchEnd(-80, 0)
	assert.Equal(t, 0, f.ctrl.Navigator.State().Current)

	d.TouchStart(0, 0)
	d.TouchEnd(-120, 0)
	assert.Equal(t, 1, f.ctrl.Navigator.State().Current)
}

func TestKeyboardNavigation(t *testing.T) {
	f := newFixture(t, 5)
	d := f.ctrl.Dispatcher
	nav := f.ctrl.Navigator

	d.Key(KeyRight)
	assert.Equal(t, 1, nav.State().Current)
	d.Key(KeyDown) // locked
	assert.Equal(t, 1, nav.State().Current)

	f.sched.Advance(TransitionDuration)
	d.Key(KeyDown)
	assert.Equal(t, 2, nav.State().Current)

	f.sched.Advance(TransitionDuration)
	d.Key(KeyLeft)
	assert.Equal(t, 1, nav.State().Current)

	f.sched.Advance(TransitionDuration)
	d.Key(KeyUp)
	assert.Equal(t, 0, nav.State().Current)
}

func TestEscapeClosesTOC(t *testing.T) {
	f := newFixture(t, 5)
	d := f.ctrl.Dispatcher
	assert.Equal(t, TocClosed, d.Overlay())

	d.Click(ControlTOCToggle)
	require.Equal(t, TocOpen, d.Overlay())

	d.Key(KeyEscape)
	assert.Equal(t, TocClosed, d.Overlay())
	d.Key(KeyEscape)
	assert.Equal(t, TocClosed, d.Overlay())
	assert.Equal(t, 0, f.ctrl.Navigator.State().Current)
}

func TestOverlayControls(t *testing.T) {
	f := newFixture(t, 5)
	d := f.ctrl.Dispatcher

	d.Click(ControlTOCToggle)
	d.Click(ControlTOCToggle)
	assert.Equal(t, TocClosed, d.Overlay())

	for _, c := range []Control{ControlTOCClose, ControlBackdrop} {
		d.Click(ControlTOCToggle)
		require.Equal(t, TocOpen, d.Overlay())
		d.Click(c)
		assert.Equal(t, TocClosed, d.Overlay())
	}
}

func TestTOCEntryJumpsAndCloses(t *testing.T) {
	f := newFixture(t, 8)
	d := f.ctrl.Dispatcher
	d.Click(ControlTOCToggle)
	f.surface.calls = nil

	d.ClickTOCEntry(models.TOCEntry{Title: "Four", Page: 6})
	assert.Equal(t, 6, f.ctrl.Navigator.State().Current)
	assert.Equal(t, TocClosed, d.Overlay())
	assert.Equal(t, "exit 0 next", f.surface.calls[0], "direction inferred")
	assert.Equal(t, 3, f.ctrl.Sync.Chrome().ActiveTOC)

	// a rejected jump still closes the overlay
	d.Click(ControlTOCToggle)
	d.ClickTOCEntry(models.TOCEntry{Title: "One", Page: 0})
	assert.Equal(t, 6, f.ctrl.Navigator.State().Current)
	assert.Equal(t, TocClosed, d.Overlay())
}

func TestPageRefLeavesOverlayAlone(t *testing.T) {
	f := newFixture(t, 8)
	d := f.ctrl.Dispatcher
	d.Click(ControlTOCToggle)

	d.ClickPageRef(models.PageRef{Text: "see page 5", Page: 4})
	assert.Equal(t, 4, f.ctrl.Navigator.State().Current)
	assert.Equal(t, TocOpen, d.Overlay())
}

func TestButtonControls(t *testing.T) {
	f := newFixture(t, 3)
	d := f.ctrl.Dispatcher

	d.Click(ControlPrev)
	assert.Equal(t, 0, f.ctrl.Navigator.State().Current)
	d.Click(ControlNext)
	assert.Equal(t, 1, f.ctrl.Navigator.State().Current)

	refreshes := len(f.display.shown)
	d.Click(ControlTheme)
	assert.Equal(t, ThemeDark, f.ctrl.Prefs.Theme())
	d.Click(ControlFontIncrease)
	assert.Equal(t, 2, f.ctrl.Prefs.FontLevel())
	d.Click(ControlFontDecrease)
	d.Click(ControlFontDecrease)
	assert.Equal(t, 0, f.ctrl.Prefs.FontLevel())
	assert.Len(t, f.display.shown, refreshes+4)
}

func TestNewControllerValidation(t *testing.T) {
	_, err := NewController(testBook(0), Options{KV: nil, Scheduler: &fakeScheduler{}})
	assert.Error(t, err)

	_, err = NewController(testBook(2), Options{KV: nil, Scheduler: &fakeScheduler{}})
	assert.Error(t, err)

	_, err = NewController(&models.Book{}, Options{KV: newFixture(t, 1).kv, Scheduler: &fakeScheduler{}})
	assert.Error(t, err, "empty book")
}
