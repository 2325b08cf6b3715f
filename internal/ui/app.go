package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/justyntemme/folio/internal/reader"
	"github.com/justyntemme/folio/internal/storage"
	"github.com/justyntemme/folio/internal/ui/styles"
	"github.com/justyntemme/folio/internal/ui/terminal"
	"github.com/justyntemme/folio/internal/ui/views"
	"github.com/justyntemme/folio/pkg/models"
)

// Options configure the application
type Options struct {
	SwipeThreshold float64
	ImageMode      terminal.TermImageMode
	Logger         *zap.Logger
}

// App is the main application model
type App struct {
	ctrl   *reader.Controller
	reader *views.ReaderView
	sched  *Scheduler
	keys   KeyMap
	help   help.Model
	log    *zap.Logger

	// Window dimensions
	width  int
	height int

	showHelp bool

	// Left button press in progress, in cells
	pressing       bool
	pressX, pressY int
}

// NewApp creates a new application instance for book. Preferences are read
// from and written to kv.
func NewApp(book *models.Book, kv storage.KV, opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	sched := NewScheduler()
	rv := views.NewReaderView(book, opts.ImageMode, log.Named("view"))
	ctrl, err := reader.NewController(book, reader.Options{
		KV:             kv,
		Scheduler:      sched,
		Surface:        rv,
		Display:        rv,
		Presenter:      rv,
		Logger:         log,
		SwipeThreshold: opts.SwipeThreshold,
	})
	if err != nil {
		return nil, err
	}
	rv.Bind(ctrl)

	app := &App{
		ctrl:   ctrl,
		reader: rv,
		sched:  sched,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		log:    log,
	}
	app.resize(80, 24)
	return app, nil
}

// Controller returns the reader controller driven by the app
func (a *App) Controller() *reader.Controller {
	return a.ctrl
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.reader.Init(),
		tea.SetWindowTitle(a.ctrl.Book.Title),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)

	case timerFiredMsg:
		a.sched.Fire(msg.id)

	case tea.KeyMsg:
		cmd = a.handleKey(msg)

	case tea.MouseMsg:
		cmd = a.handleMouse(msg)
	}

	// Ticks scheduled by navigation while handling msg
	return a, tea.Batch(cmd, a.sched.Flush())
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.help.Width = width
	// Last row is the help footer
	a.reader.SetSize(width, max(3, height-1))
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	d := a.ctrl.Dispatcher

	if key.Matches(msg, a.keys.Quit) {
		return tea.Quit
	}
	if a.showHelp {
		if key.Matches(msg, a.keys.Help, a.keys.Escape) {
			a.showHelp = false
		}
		return nil
	}
	if key.Matches(msg, a.keys.Help) {
		a.showHelp = true
		return nil
	}

	if d.Overlay() == reader.TocOpen {
		switch {
		case key.Matches(msg, a.keys.TOCPrev):
			a.reader.MoveTOCCursor(-1)
		case key.Matches(msg, a.keys.TOCNext):
			a.reader.MoveTOCCursor(1)
		case key.Matches(msg, a.keys.Enter):
			if toc := a.ctrl.Book.TOC; len(toc) > 0 {
				d.ClickTOCEntry(toc[a.reader.TOCCursor()])
			}
		case key.Matches(msg, a.keys.Escape):
			d.Key(reader.KeyEscape)
		case key.Matches(msg, a.keys.TOC):
			d.Click(reader.ControlTOCToggle)
		case key.Matches(msg, a.keys.Left):
			d.Key(reader.KeyLeft)
		case key.Matches(msg, a.keys.Up):
			d.Key(reader.KeyUp)
		case key.Matches(msg, a.keys.Right):
			d.Key(reader.KeyRight)
		case key.Matches(msg, a.keys.Down):
			d.Key(reader.KeyDown)
		}
		return nil
	}

	switch {
	case key.Matches(msg, a.keys.Left):
		d.Key(reader.KeyLeft)
	case key.Matches(msg, a.keys.Up):
		d.Key(reader.KeyUp)
	case key.Matches(msg, a.keys.Right):
		d.Key(reader.KeyRight)
	case key.Matches(msg, a.keys.Down):
		d.Key(reader.KeyDown)
	case key.Matches(msg, a.keys.Escape):
		d.Key(reader.KeyEscape)
	case key.Matches(msg, a.keys.TOC):
		a.toggleTOC()
	case key.Matches(msg, a.keys.Theme):
		d.Click(reader.ControlTheme)
	case key.Matches(msg, a.keys.FontUp):
		d.Click(reader.ControlFontIncrease)
	case key.Matches(msg, a.keys.FontDown):
		d.Click(reader.ControlFontDecrease)
	case key.Matches(msg, a.keys.NextLink):
		a.reader.FocusNextRef()
	case key.Matches(msg, a.keys.PrevLink):
		a.reader.FocusPrevRef()
	case key.Matches(msg, a.keys.Enter):
		if i, ok := a.reader.FocusedRef(); ok {
			d.ClickPageRef(a.currentPage().Refs[i])
		}
	default:
		_, cmd := a.reader.Update(msg)
		return cmd
	}
	return nil
}

// handleMouse turns a left press/release pair into a touch gesture, and into
// a click when both land on the same cell.
func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		if a.showHelp {
			return nil
		}
		_, cmd := a.reader.Update(msg)
		return cmd
	}

	d := a.ctrl.Dispatcher
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		a.pressing = true
		a.pressX, a.pressY = msg.X, msg.Y
		d.TouchStart(touchX(msg.X), touchY(msg.Y))

	case tea.MouseActionRelease:
		if !a.pressing {
			return nil
		}
		a.pressing = false
		if a.showHelp {
			a.showHelp = false
			return nil
		}
		d.TouchEnd(touchX(msg.X), touchY(msg.Y))
		if msg.X == a.pressX && msg.Y == a.pressY {
			a.click(msg.X, msg.Y)
		}
	}
	return nil
}

func (a *App) click(x, y int) {
	d := a.ctrl.Dispatcher
	t := a.reader.HitTest(x, y)
	a.log.Debug("Click", zap.Int("x", x), zap.Int("y", y), zap.Stringer("target", t.Kind))

	switch t.Kind {
	case views.TargetControl:
		if t.Control == reader.ControlTOCToggle {
			a.toggleTOC()
			return
		}
		d.Click(t.Control)
	case views.TargetTOCEntry:
		d.ClickTOCEntry(a.ctrl.Book.TOC[t.Index])
	case views.TargetPageRef:
		d.ClickPageRef(a.currentPage().Refs[t.Index])
	}
}

func (a *App) toggleTOC() {
	a.ctrl.Dispatcher.Click(reader.ControlTOCToggle)
	if a.ctrl.Dispatcher.Overlay() == reader.TocOpen {
		a.reader.ResetTOCCursor()
	}
}

func (a *App) currentPage() models.Page {
	return a.ctrl.Book.Pages[a.ctrl.Navigator.State().Current]
}

// Cells are scaled to gesture units so the swipe threshold reads like pixels
func touchX(col int) float64 { return float64(col * terminal.CellWidth) }
func touchY(row int) float64 { return float64(row * terminal.CellHeight) }

// View implements tea.Model
func (a *App) View() string {
	if a.showHelp {
		return a.renderHelp()
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.reader.View(), a.help.View(a.keys))
}

// renderHelp renders the help overlay
func (a *App) renderHelp() string {
	full := a.help
	full.ShowAll = true
	full.Width = 0

	body := styles.DialogTitle.Render("Keyboard Shortcuts") + "\n\n" +
		full.View(a.keys) + "\n\n" +
		styles.HelpKey.Render("Mouse") + "\n" +
		"  click     buttons, contents entries and links\n" +
		"  drag      swipe left/right to turn the page\n" +
		"  wheel     scroll the page"

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		styles.Dialog.Render(body),
	)
}
