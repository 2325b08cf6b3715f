package reader

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/justyntemme/folio/internal/storage"
)

// Theme is the colour scheme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Persistence keys
const (
	KeyTheme     = "theme"
	KeyFontLevel = "font-index"
)

// Font levels. Level 1 is the baseline and carries no font class.
const (
	MinFontLevel     = 0
	MaxFontLevel     = 3
	DefaultFontLevel = 1
	DefaultTheme     = ThemeLight
)

var fontClasses = [...]string{"font-small", "", "font-large", "font-xlarge"}

// FontClass returns the presentation class for level, "" for the baseline
func FontClass(level int) string {
	if level < MinFontLevel || level > MaxFontLevel {
		return ""
	}
	return fontClasses[level]
}

// Presenter applies preferences to whatever draws the book
type Presenter interface {
	ApplyTheme(Theme)
	AddFontClass(class string)
	RemoveFontClass(class string)
}

// Preferences holds the theme and font level and writes them through to a KV
type Preferences struct {
	kv        storage.KV
	presenter Presenter
	log       *zap.Logger

	theme Theme
	font  int
}

type nopPresenter struct{}

func (nopPresenter) ApplyTheme(Theme)       {}
func (nopPresenter) AddFontClass(string)    {}
func (nopPresenter) RemoveFontClass(string) {}

// NewPreferences starts at the built-in defaults. Call Restore to load saved
// values. presenter and log may be nil.
func NewPreferences(kv storage.KV, presenter Presenter, log *zap.Logger) *Preferences {
	if presenter == nil {
		presenter = nopPresenter{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Preferences{
		kv:        kv,
		presenter: presenter,
		log:       log,
		theme:     DefaultTheme,
		font:      DefaultFontLevel,
	}
}

// Theme returns the active theme
func (p *Preferences) Theme() Theme {
	return p.theme
}

// FontLevel returns the active font level
func (p *Preferences) FontLevel() int {
	return p.font
}

// ToggleTheme flips light and dark, applies and persists the result
func (p *Preferences) ToggleTheme() Theme {
	if p.theme == ThemeDark {
		p.theme = ThemeLight
	} else {
		p.theme = ThemeDark
	}
	p.presenter.ApplyTheme(p.theme)
	p.persist(KeyTheme, string(p.theme))
	return p.theme
}

// AdjustFontLevel moves the font level by delta, clamped to [0,3]
func (p *Preferences) AdjustFontLevel(delta int) int {
	if class := FontClass(p.font); class != "" {
		p.presenter.RemoveFontClass(class)
	}
	p.font = min(MaxFontLevel, max(MinFontLevel, p.font+delta))
	if class := FontClass(p.font); class != "" {
		p.presenter.AddFontClass(class)
	}
	p.persist(KeyFontLevel, strconv.Itoa(p.font))
	return p.font
}

// Restore loads persisted values. Missing or unreadable entries keep the defaults.
func (p *Preferences) Restore() {
	if v, ok := p.lookup(KeyTheme); ok {
		switch t := Theme(v); t {
		case ThemeLight, ThemeDark:
			p.theme = t
			p.presenter.ApplyTheme(t)
		default:
			p.log.Warn("Ignoring unknown stored theme", zap.String("value", v))
		}
	}

	if v, ok := p.lookup(KeyFontLevel); ok {
		level, err := strconv.Atoi(v)
		if err != nil || level < MinFontLevel || level > MaxFontLevel {
			p.log.Warn("Ignoring invalid stored font level", zap.String("value", v))
			return
		}
		if class := FontClass(p.font); class != "" {
			p.presenter.RemoveFontClass(class)
		}
		p.font = level
		if class := FontClass(level); class != "" {
			p.presenter.AddFontClass(class)
		}
	}
}

// Reset removes the persisted values and returns to the defaults
func (p *Preferences) Reset() error {
	for _, key := range []string{KeyTheme, KeyFontLevel} {
		if err := p.kv.Delete(key); err != nil {
			return err
		}
	}
	if class := FontClass(p.font); class != "" {
		p.presenter.RemoveFontClass(class)
	}
	p.theme = DefaultTheme
	p.font = DefaultFontLevel
	p.presenter.ApplyTheme(p.theme)
	return nil
}

func (p *Preferences) lookup(key string) (string, bool) {
	v, ok, err := p.kv.Get(key)
	if err != nil {
		p.log.Warn("Unable to read preference", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, ok
}

// persist never fails the caller: the in-memory value stays authoritative
func (p *Preferences) persist(key, value string) {
	if err := p.kv.Set(key, value); err != nil {
		p.log.Warn("Unable to persist preference", zap.String("key", key), zap.String("value", value), zap.Error(err))
	}
}
