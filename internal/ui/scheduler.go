package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/folio/internal/reader"
)

// timerFiredMsg is delivered to Update when a scheduled task is due
type timerFiredMsg struct {
	id uint64
}

// Scheduler runs deferred reader tasks on the bubbletea event loop. Schedule
// queues a tick command; the caller returns Flush from Update and the task
// runs when its timerFiredMsg comes back through Update.
type Scheduler struct {
	next   uint64
	tasks  map[uint64]*task
	queued []tea.Cmd
}

type task struct {
	s    *Scheduler
	id   uint64
	fn   func()
	done bool
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[uint64]*task)}
}

// Schedule implements reader.Scheduler
func (s *Scheduler) Schedule(delay time.Duration, fn func()) reader.Task {
	s.next++
	t := &task{s: s, id: s.next, fn: fn}
	s.tasks[t.id] = t

	id := t.id
	s.queued = append(s.queued, tea.Tick(delay, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return t
}

// Cancel implements reader.Task
func (t *task) Cancel() bool {
	if t.done {
		return false
	}
	t.done = true
	delete(t.s.tasks, t.id)
	return true
}

// Fire runs the task with id. Cancelled or unknown tasks are ignored.
func (s *Scheduler) Fire(id uint64) bool {
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	delete(s.tasks, id)
	t.done = true
	t.fn()
	return true
}

// Flush returns the ticks queued since the last call
func (s *Scheduler) Flush() tea.Cmd {
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// Pending returns the number of tasks waiting to fire
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}
