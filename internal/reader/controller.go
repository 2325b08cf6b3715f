package reader

import (
	"errors"

	"go.uber.org/zap"

	"github.com/justyntemme/folio/internal/storage"
	"github.com/justyntemme/folio/pkg/models"
)

// Options are the collaborators of a Controller. Only KV and Scheduler are required.
type Options struct {
	KV        storage.KV
	Scheduler Scheduler
	Surface   Surface
	Display   Display
	Presenter Presenter
	Logger    *zap.Logger

	SwipeThreshold float64
}

// Controller bundles the pieces of the reader for one open book
type Controller struct {
	Book       *models.Book
	Navigator  *Navigator
	Prefs      *Preferences
	Sync       *Sync
	Dispatcher *Dispatcher
}

// NewController builds the controller, restores preferences and performs the
// first refresh.
func NewController(book *models.Book, opts Options) (*Controller, error) {
	if opts.KV == nil {
		return nil, errors.New("reader: KV is required")
	}
	if opts.Scheduler == nil {
		return nil, errors.New("reader: Scheduler is required")
	}

	state, err := NewState(book.PageCount())
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	sync := NewSync(state, book.TOC, opts.Display)
	nav := NewNavigator(state, opts.Surface, opts.Scheduler, sync, log.Named("nav"))
	prefs := NewPreferences(opts.KV, opts.Presenter, log.Named("prefs"))
	disp := NewDispatcher(nav, prefs, sync, log.Named("input"))
	disp.SetSwipeThreshold(opts.SwipeThreshold)

	if opts.Surface != nil {
		opts.Surface.MarkActive(state.Current)
	}
	prefs.Restore()
	sync.Refresh()

	log.Debug("Reader ready",
		zap.String("title", book.Title),
		zap.Int("pages", state.Total),
		zap.String("theme", string(prefs.Theme())),
		zap.Int("font", prefs.FontLevel()))

	return &Controller{
		Book:       book,
		Navigator:  nav,
		Prefs:      prefs,
		Sync:       sync,
		Dispatcher: disp,
	}, nil
}
