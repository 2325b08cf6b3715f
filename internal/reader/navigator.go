package reader

import (
	"time"

	"go.uber.org/zap"
)

const (
	// TransitionDuration is how long a page transition holds the animation lock
	TransitionDuration = 500 * time.Millisecond

	// EnterOffset is the distance the incoming page starts from its resting place
	EnterOffset = 60
)

// Navigator is the only writer of the pagination state
type Navigator struct {
	state   *State
	surface Surface
	sched   Scheduler
	sync    *Sync
	log     *zap.Logger

	// cleanup of the transition in flight, nil when idle
	pending Task
	settle  func()
}

// NewNavigator creates a navigator over state. surface and log may be nil.
func NewNavigator(state *State, surface Surface, sched Scheduler, sync *Sync, log *zap.Logger) *Navigator {
	if surface == nil {
		surface = nopSurface{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Navigator{
		state:   state,
		surface: surface,
		sched:   sched,
		sync:    sync,
		log:     log,
	}
}

// State returns a copy of the current pagination state
func (n *Navigator) State() State {
	return *n.state
}

// Next moves one page forward
func (n *Navigator) Next() bool {
	return n.GoTo(n.state.Current+1, DirNext)
}

// Prev moves one page back
func (n *Navigator) Prev() bool {
	return n.GoTo(n.state.Current-1, DirPrev)
}

// GoTo starts a transition to target. Out-of-range targets, the current page
// and requests made while a transition is in flight are ignored; the result
// reports whether the request was accepted.
func (n *Navigator) GoTo(target int, dir Direction) bool {
	from := n.state.Current
	switch {
	case !n.state.InRange(target):
		n.log.Debug("Navigation ignored: page out of range", zap.Int("target", target), zap.Int("total", n.state.Total))
		return false
	case target == from:
		n.log.Debug("Navigation ignored: already on page", zap.Int("target", target))
		return false
	case n.state.Animating:
		n.log.Debug("Navigation ignored: transition in flight", zap.Int("target", target))
		return false
	}

	if dir == DirAuto {
		if target > from {
			dir = DirNext
		} else {
			dir = DirPrev
		}
	}

	n.state.Animating = true

	n.surface.MarkExiting(from, dir)
	n.surface.ClearTransition(target)
	offset := EnterOffset
	if dir == DirPrev {
		offset = -EnterOffset
	}
	n.surface.SetTransient(target, offset, 0)
	n.surface.MarkActive(target)

	// state changes now, only the visual settling is deferred
	n.state.Current = target
	if n.sync != nil {
		n.sync.Refresh()
	}
	n.surface.ResetScroll(target)

	n.log.Debug("Page transition started", zap.Int("from", from), zap.Int("to", target), zap.Stringer("dir", dir))

	n.settle = func() {
		n.surface.ClearTransition(from)
		n.surface.ClearTransition(target)
		n.state.Animating = false
		n.pending = nil
		n.settle = nil
	}
	n.pending = n.sched.Schedule(TransitionDuration, n.settle)
	return true
}

// Finish completes the transition in flight immediately, cancelling its
// scheduled cleanup. It is a no-op when idle.
func (n *Navigator) Finish() {
	if n.pending == nil {
		return
	}
	n.pending.Cancel()
	n.settle()
}
