package reader

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/justyntemme/folio/internal/storage"
	"github.com/justyntemme/folio/pkg/models"
)

// fakeScheduler runs tasks when the test advances its clock
type fakeScheduler struct {
	now   time.Duration
	tasks []*fakeTask
}

type fakeTask struct {
	at   time.Duration
	fn   func()
	done bool
}

func (t *fakeTask) Cancel() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (s *fakeScheduler) Schedule(delay time.Duration, fn func()) Task {
	t := &fakeTask{at: s.now + delay, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

func (s *fakeScheduler) Advance(d time.Duration) {
	s.now += d
	for _, t := range s.tasks {
		if !t.done && t.at <= s.now {
			t.done = true
			t.fn()
		}
	}
}

func (s *fakeScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// recordingSurface logs every call as a string
type recordingSurface struct {
	calls []string
}

func (s *recordingSurface) MarkActive(p int) { s.calls = append(s.calls, fmt.Sprintf("active %d", p)) }
func (s *recordingSurface) MarkExiting(p int, d Direction) {
	s.calls = append(s.calls, fmt.Sprintf("exit %d %s", p, d))
}
func (s *recordingSurface) SetTransient(p, off int, op float64) {
	s.calls = append(s.calls, fmt.Sprintf("transient %d %d %.0f", p, off, op))
}
func (s *recordingSurface) ResetScroll(p int) { s.calls = append(s.calls, fmt.Sprintf("scroll %d", p)) }
func (s *recordingSurface) ClearTransition(p int) {
	s.calls = append(s.calls, fmt.Sprintf("clear %d", p))
}

type recordingDisplay struct {
	shown []Chrome
}

func (d *recordingDisplay) ShowChrome(c Chrome) { d.shown = append(d.shown, c) }

type recordingPresenter struct {
	theme   Theme
	classes map[string]bool
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{theme: ThemeLight, classes: make(map[string]bool)}
}

func (p *recordingPresenter) ApplyTheme(t Theme)          { p.theme = t }
func (p *recordingPresenter) AddFontClass(c string)       { p.classes[c] = true }
func (p *recordingPresenter) RemoveFontClass(c string)    { delete(p.classes, c) }
func (p *recordingPresenter) active() (out []string) {
	for c := range p.classes {
		out = append(out, c)
	}
	return out
}

func testBook(pages int) *models.Book {
	b := &models.Book{Title: "Test Book"}
	for i := 0; i < pages; i++ {
		b.Pages = append(b.Pages, models.Page{Title: fmt.Sprintf("Page %d", i+1)})
	}
	// every other page has a TOC entry
	for i := 0; i < pages; i += 2 {
		b.TOC = append(b.TOC, models.TOCEntry{Title: fmt.Sprintf("Chapter %d", i/2+1), Page: i})
	}
	return b
}

type fixture struct {
	ctrl    *Controller
	sched   *fakeScheduler
	surface *recordingSurface
	display *recordingDisplay
	pres    *recordingPresenter
	kv      *storage.Memory
}

func newFixture(t *testing.T, pages int) *fixture {
	t.Helper()
	f := &fixture{
		sched:   &fakeScheduler{},
		surface: &recordingSurface{},
		display: &recordingDisplay{},
		pres:    newRecordingPresenter(),
		kv:      storage.NewMemory(),
	}
	ctrl, err := NewController(testBook(pages), Options{
		KV:        f.kv,
		Scheduler: f.sched,
		Surface:   f.surface,
		Display:   f.display,
		Presenter: f.pres,
		Logger:    zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	f.ctrl = ctrl
	return f
}
