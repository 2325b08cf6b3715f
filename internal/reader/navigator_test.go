package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateRejectsEmptyBook(t *testing.T) {
	_, err := NewState(0)
	assert.Error(t, err)

	s, err := NewState(3)
	require.NoError(t, err)
	assert.Equal(t, State{Current: 0, Total: 3}, *s)
}

func TestGoToEveryPageLocksUntilTransitionEnds(t *testing.T) {
	const total = 6
	for from := 0; from < total; from++ {
		for to := 0; to < total; to++ {
			if from == to {
				continue
			}
			f := newFixture(t, total)
			nav := f.ctrl.Navigator
			if from != 0 {
				require.True(t, nav.GoTo(from, DirAuto))
				f.sched.Advance(TransitionDuration)
			}

			require.True(t, nav.GoTo(to, DirAuto), "from %d to %d", from, to)
			assert.Equal(t, to, nav.State().Current)
			assert.True(t, nav.State().Animating)

			f.sched.Advance(TransitionDuration - 1)
			assert.True(t, nav.State().Animating, "lock released early")

			f.sched.Advance(1)
			assert.False(t, nav.State().Animating)
			assert.Equal(t, to, nav.State().Current)
		}
	}
}

func TestGoToCurrentPageIsNoop(t *testing.T) {
	f := newFixture(t, 5)
	calls := len(f.surface.calls)
	refreshes := len(f.display.shown)

	assert.False(t, f.ctrl.Navigator.GoTo(0, DirAuto))
	assert.Equal(t, State{Current: 0, Total: 5}, f.ctrl.Navigator.State())
	assert.Len(t, f.surface.calls, calls, "no visual effect expected")
	assert.Len(t, f.display.shown, refreshes)
	assert.Zero(t, f.sched.Pending())
}

func TestGoToOutOfRangeRejected(t *testing.T) {
	f := newFixture(t, 5)
	nav := f.ctrl.Navigator

	assert.False(t, nav.GoTo(-1, DirAuto))
	assert.False(t, nav.GoTo(5, DirAuto))
	assert.False(t, nav.Prev(), "prev on the first page")
	assert.Equal(t, State{Current: 0, Total: 5}, nav.State())

	require.True(t, nav.GoTo(4, DirAuto))
	f.sched.Advance(TransitionDuration)
	assert.False(t, nav.Next(), "next on the last page")
	assert.Equal(t, 4, nav.State().Current)
}

func TestGoToWhileAnimatingRejected(t *testing.T) {
	f := newFixture(t, 5)
	nav := f.ctrl.Navigator

	require.True(t, nav.Next())
	assert.False(t, nav.Next())
	assert.False(t, nav.GoTo(3, DirAuto))
	assert.Equal(t, 1, nav.State().Current)
	assert.Equal(t, 1, f.sched.Pending(), "only one transition in flight")

	f.sched.Advance(TransitionDuration)
	assert.True(t, nav.Next())
	assert.Equal(t, 2, nav.State().Current)
}

func TestTransitionSurfaceSequence(t *testing.T) {
	f := newFixture(t, 5)
	f.surface.calls = nil

	require.True(t, f.ctrl.Navigator.GoTo(3, DirAuto))
	assert.Equal(t, []string{
		"exit 0 next",
		"clear 3",
		"transient 3 60 0",
		"active 3",
		"scroll 3",
	}, f.surface.calls)

	f.surface.calls = nil
	f.sched.Advance(TransitionDuration)
	assert.Equal(t, []string{"clear 0", "clear 3"}, f.surface.calls)

	f.surface.calls = nil
	require.True(t, f.ctrl.Navigator.GoTo(1, DirAuto))
	assert.Equal(t, "exit 3 prev", f.surface.calls[0])
	assert.Equal(t, "transient 1 -60 0", f.surface.calls[2])
}

func TestExplicitDirectionOverridesInference(t *testing.T) {
	f := newFixture(t, 5)
	f.surface.calls = nil

	require.True(t, f.ctrl.Navigator.GoTo(4, DirPrev))
	assert.Equal(t, "exit 0 prev", f.surface.calls[0])
	assert.Equal(t, "transient 4 -60 0", f.surface.calls[2])
}

func TestRefreshHappensBeforeSettle(t *testing.T) {
	f := newFixture(t, 4)
	before := len(f.display.shown)

	require.True(t, f.ctrl.Navigator.Next())
	require.Len(t, f.display.shown, before+1)
	assert.Equal(t, 1, f.display.shown[before].Page)
	assert.True(t, f.ctrl.Navigator.State().Animating)
}

func TestFinishSettlesImmediately(t *testing.T) {
	f := newFixture(t, 4)
	nav := f.ctrl.Navigator

	nav.Finish() // idle: nothing happens
	require.True(t, nav.Next())
	nav.Finish()
	assert.False(t, nav.State().Animating)
	assert.Zero(t, f.sched.Pending(), "cleanup task cancelled")

	// the cancelled cleanup never runs later
	f.surface.calls = nil
	f.sched.Advance(TransitionDuration)
	assert.Empty(t, f.surface.calls)
	assert.True(t, nav.Next())
}
