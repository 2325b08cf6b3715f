package views

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/justyntemme/folio/internal/reader"
	"github.com/justyntemme/folio/internal/ui/styles"
	"github.com/justyntemme/folio/internal/ui/terminal"
	"github.com/justyntemme/folio/pkg/models"
)

const (
	minMeasure          = 20
	maxIllustrationRows = 12
	tocMaxWidth         = 60
	wheelStep           = 3
)

type lineKind int

const (
	lineText lineKind = iota
	lineTitle
	lineMuted
	lineRef
	lineImage
)

type bodyLine struct {
	text string
	kind lineKind
	ref  int
}

type transient struct {
	offset  int
	opacity float64
}

// ReaderView displays one book: a header, the page body, the chrome bar and
// the table of contents overlay. It is the controller's surface, display and
// presenter.
type ReaderView struct {
	book *models.Book
	ctrl *reader.Controller
	log  *zap.Logger

	// Page state driven by the navigator
	active    int
	exiting   int
	exitDir   reader.Direction
	transient map[int]transient
	scroll    map[int]int

	// Pushed by UI sync and preferences
	chrome    reader.Chrome
	theme     reader.Theme
	fontClass string

	tocCursor int
	refFocus  int

	imageMode terminal.TermImageMode
	images    map[int]string
	imageErrs map[int]error

	// Dimensions
	width  int
	height int
}

// NewReaderView creates a reader view for book. Illustrations are drawn
// only when mode supports images.
func NewReaderView(book *models.Book, mode terminal.TermImageMode, log *zap.Logger) *ReaderView {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReaderView{
		book:      book,
		log:       log,
		exiting:   -1,
		transient: make(map[int]transient),
		scroll:    make(map[int]int),
		theme:     reader.DefaultTheme,
		refFocus:  -1,
		imageMode: mode,
		images:    make(map[int]string),
		imageErrs: make(map[int]error),
		chrome:    reader.Chrome{ActiveTOC: -1},
		width:     80,
		height:    23,
	}
}

// Bind gives the view read access to the controller that drives it
func (v *ReaderView) Bind(ctrl *reader.Controller) {
	v.ctrl = ctrl
}

// Surface

// MarkActive implements reader.Surface
func (v *ReaderView) MarkActive(page int) {
	v.active = page
	v.refFocus = -1
}

// MarkExiting implements reader.Surface
func (v *ReaderView) MarkExiting(page int, dir reader.Direction) {
	v.exiting = page
	v.exitDir = dir
}

// SetTransient implements reader.Surface
func (v *ReaderView) SetTransient(page int, offset int, opacity float64) {
	v.transient[page] = transient{offset: offset, opacity: opacity}
}

// ResetScroll implements reader.Surface
func (v *ReaderView) ResetScroll(page int) {
	delete(v.scroll, page)
}

// ClearTransition implements reader.Surface
func (v *ReaderView) ClearTransition(page int) {
	if v.exiting == page {
		v.exiting = -1
	}
	delete(v.transient, page)
}

// ActivePage returns the page being displayed
func (v *ReaderView) ActivePage() int {
	return v.active
}

// Exiting returns the page leaving the screen, -1 when none
func (v *ReaderView) Exiting() (int, reader.Direction) {
	return v.exiting, v.exitDir
}

// Transient returns the temporary styling of page, if any
func (v *ReaderView) Transient(page int) (offset int, opacity float64, ok bool) {
	t, ok := v.transient[page]
	return t.offset, t.opacity, ok
}

// ScrollOffset returns the first visible body line of page
func (v *ReaderView) ScrollOffset(page int) int {
	return v.scroll[page]
}

// Display and presenter

// ShowChrome implements reader.Display
func (v *ReaderView) ShowChrome(c reader.Chrome) {
	v.chrome = c
}

// Chrome returns the last chrome pushed by UI sync
func (v *ReaderView) Chrome() reader.Chrome {
	return v.chrome
}

// ApplyTheme implements reader.Presenter
func (v *ReaderView) ApplyTheme(t reader.Theme) {
	v.theme = t
	styles.SetCurrentTheme(string(t))
}

// AddFontClass implements reader.Presenter
func (v *ReaderView) AddFontClass(class string) {
	v.fontClass = class
	v.resetImages()
}

// RemoveFontClass implements reader.Presenter
func (v *ReaderView) RemoveFontClass(class string) {
	if v.fontClass == class {
		v.fontClass = ""
		v.resetImages()
	}
}

// FontClass returns the applied font class, "" at the baseline
func (v *ReaderView) FontClass() string {
	return v.fontClass
}

// Init implements View
func (v *ReaderView) Init() tea.Cmd {
	return nil
}

// Update implements View. It handles body scrolling; page turns go through
// the dispatcher.
func (v *ReaderView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.ScrollBy(-wheelStep)
		case tea.MouseButtonWheelDown:
			v.ScrollBy(wheelStep)
		}
	case tea.KeyMsg:
		if v.overlayOpen() {
			return v, nil
		}
		page := max(1, v.bodyHeight()-2)
		switch msg.String() {
		case "pgdown", "ctrl+d", " ":
			v.ScrollBy(page)
		case "pgup", "ctrl+u":
			v.ScrollBy(-page)
		case "home", "g":
			v.scroll[v.active] = 0
		case "end", "G":
			v.ScrollBy(len(v.pageLines(v.active)))
		}
	}
	return v, nil
}

// SetSize implements View
func (v *ReaderView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.resetImages()
}

// ScrollBy moves the body of the active page by delta lines
func (v *ReaderView) ScrollBy(delta int) {
	n := len(v.pageLines(v.active))
	v.scroll[v.active] = v.clampScroll(v.scroll[v.active]+delta, n)
}

// Table of contents cursor

// ResetTOCCursor puts the cursor on the active entry, or the first one
func (v *ReaderView) ResetTOCCursor() {
	v.tocCursor = max(0, v.chrome.ActiveTOC)
}

// MoveTOCCursor moves the cursor by delta entries
func (v *ReaderView) MoveTOCCursor(delta int) {
	if len(v.book.TOC) == 0 {
		return
	}
	v.tocCursor = min(len(v.book.TOC)-1, max(0, v.tocCursor+delta))
}

// TOCCursor returns the index of the highlighted entry
func (v *ReaderView) TOCCursor() int {
	return v.tocCursor
}

// Page reference focus

// FocusNextRef moves keyboard focus to the next page reference of the active page
func (v *ReaderView) FocusNextRef() {
	v.cycleRef(1)
}

// FocusPrevRef moves keyboard focus to the previous page reference
func (v *ReaderView) FocusPrevRef() {
	v.cycleRef(-1)
}

// FocusedRef returns the index of the focused reference on the active page
func (v *ReaderView) FocusedRef() (int, bool) {
	return v.refFocus, v.refFocus >= 0
}

func (v *ReaderView) cycleRef(delta int) {
	n := len(v.book.Pages[v.active].Refs)
	if n == 0 {
		v.refFocus = -1
		return
	}
	if v.refFocus < 0 {
		if delta > 0 {
			v.refFocus = 0
		} else {
			v.refFocus = n - 1
		}
	} else {
		v.refFocus = (v.refFocus + delta + n) % n
	}

	// Keep the focused reference on screen
	lines := v.pageLines(v.active)
	for i, l := range lines {
		if l.kind == lineRef && l.ref == v.refFocus {
			off := v.scroll[v.active]
			if i < off {
				off = i
			} else if i >= off+v.bodyHeight() {
				off = i - v.bodyHeight() + 1
			}
			v.scroll[v.active] = v.clampScroll(off, len(lines))
			break
		}
	}
}

// View implements View
func (v *ReaderView) View() string {
	if v.overlayOpen() {
		s, _ := v.renderTOC()
		return s
	}

	body, _ := v.renderBody()
	chrome, _ := v.renderChrome()
	return v.renderHeader() + "\n" + body + "\n" + chrome
}

// HitTest returns what lies under the cell at x, y
func (v *ReaderView) HitTest(x, y int) Target {
	if v.overlayOpen() {
		return v.tocHit(x, y)
	}
	switch {
	case y == v.height-1:
		_, zones := v.renderChrome()
		return hit(zones, x, y)
	case y >= 1 && y <= v.bodyHeight():
		_, zones := v.renderBody()
		return hit(zones, x, y)
	}
	return Target{}
}

func (v *ReaderView) overlayOpen() bool {
	return v.ctrl != nil && v.ctrl.Dispatcher.Overlay() == reader.TocOpen
}

// Layout

func (v *ReaderView) bodyHeight() int {
	return max(1, v.height-2)
}

// measure is the reading column width for the current font class
func (v *ReaderView) measure() int {
	m := min(styles.Measure(v.fontClass), v.width-4)
	return max(minMeasure, m)
}

func (v *ReaderView) margin() int {
	return max(0, (v.width-v.measure())/2)
}

func (v *ReaderView) clampScroll(off, lines int) int {
	return max(0, min(off, lines-v.bodyHeight()))
}

// renderHeader renders the book title, page title and preference summary
func (v *ReaderView) renderHeader() string {
	maxTitleWidth := max(10, v.width/3)
	left := styles.ReaderHeader.Render(styles.TruncateText(v.book.Title, maxTitleWidth))
	if t := v.book.Pages[v.active].Title; t != "" {
		left += styles.MutedText.Render(" " + styles.TruncateText(t, v.width/3))
	}
	right := styles.MutedText.Render(fmt.Sprintf("%s · %s ", v.theme, fontLabel(v.fontClass)))

	gap := max(0, v.width-lipgloss.Width(left)-lipgloss.Width(right))

	// Kitty keeps images until told otherwise
	prefix := ""
	if v.imageMode == terminal.TermModeKitty {
		prefix = terminal.ClearImages(v.imageMode)
	}
	return prefix + left + strings.Repeat(" ", gap) + right
}

func fontLabel(class string) string {
	switch class {
	case "font-small":
		return "small"
	case "font-large":
		return "large"
	case "font-xlarge":
		return "x-large"
	default:
		return "normal"
	}
}

// renderBody renders the visible part of the active page
func (v *ReaderView) renderBody() (string, []zone) {
	lines := v.pageLines(v.active)
	off := v.clampScroll(v.scroll[v.active], len(lines))
	v.scroll[v.active] = off

	shift, dim := 0, false
	if t, ok := v.transient[v.active]; ok {
		shift = t.offset / terminal.CellWidth
		dim = t.opacity < 1
	}
	indent := max(0, v.margin()+shift)
	pad := strings.Repeat(" ", indent)

	var (
		b     strings.Builder
		zones []zone
		h     = v.bodyHeight()
	)
	for row := 0; row < h; row++ {
		if i := off + row; i < len(lines) {
			l := lines[i]
			b.WriteString(pad)
			b.WriteString(v.styleLine(l, dim))
			if l.kind == lineRef {
				zones = append(zones, zone{
					x0:     indent,
					x1:     indent + lipgloss.Width(l.text),
					y:      1 + row,
					target: Target{Kind: TargetPageRef, Index: l.ref},
				})
			}
		}
		if row < h-1 {
			b.WriteString("\n")
		}
	}
	return b.String(), zones
}

func (v *ReaderView) styleLine(l bodyLine, dim bool) string {
	switch {
	case l.text == "":
		return ""
	case l.kind == lineImage:
		return l.text
	case dim:
		return styles.ReaderDimmed.Render(l.text)
	}
	switch l.kind {
	case lineTitle:
		return styles.PageTitle.Render(l.text)
	case lineMuted:
		return styles.MutedText.Render(l.text)
	case lineRef:
		if l.ref == v.refFocus {
			return styles.PageRefFocused.Render(l.text)
		}
		return styles.PageRef.Render(l.text)
	default:
		return styles.ReaderContent.Render(l.text)
	}
}

// pageLines lays out a page at the current measure
func (v *ReaderView) pageLines(page int) []bodyLine {
	p := v.book.Pages[page]
	m := v.measure()

	var lines []bodyLine
	if p.Title != "" {
		for _, l := range wrapText(p.Title, m) {
			lines = append(lines, bodyLine{text: l, kind: lineTitle})
		}
		lines = append(lines, bodyLine{})
	}
	if p.Illustration != "" {
		lines = append(lines, v.illustrationLines(page, p.Illustration)...)
		lines = append(lines, bodyLine{})
	}
	for _, l := range wrapText(p.Body, m) {
		lines = append(lines, bodyLine{text: l})
	}
	if len(p.Refs) > 0 {
		lines = append(lines, bodyLine{}, bodyLine{text: "See also", kind: lineMuted})
		for i, r := range p.Refs {
			text := styles.TruncateText(fmt.Sprintf("→ %s (p. %d)", r.Text, r.Page+1), m)
			lines = append(lines, bodyLine{text: text, kind: lineRef, ref: i})
		}
	}
	return lines
}

func (v *ReaderView) illustrationLines(page int, path string) []bodyLine {
	name := filepath.Base(path)
	rows := min(maxIllustrationRows, v.bodyHeight()/2)
	if v.imageMode == terminal.TermModeNone || rows < 1 {
		return []bodyLine{{text: "[illustration: " + name + "]", kind: lineMuted}}
	}

	seq, err := v.illustration(page, path, rows)
	if err != nil {
		return []bodyLine{{text: "[illustration unavailable: " + name + "]", kind: lineMuted}}
	}
	lines := make([]bodyLine, rows)
	lines[0] = bodyLine{text: seq, kind: lineImage}
	return lines
}

// illustration returns the cached escape sequence for a page illustration
func (v *ReaderView) illustration(page int, path string, rows int) (string, error) {
	if seq, ok := v.images[page]; ok {
		return seq, nil
	}
	if err, ok := v.imageErrs[page]; ok {
		return "", err
	}

	img, err := terminal.LoadIllustration(path, v.measure(), rows)
	if err == nil {
		var seq string
		seq, err = terminal.RenderImageToString(img, v.imageMode, terminal.IllustrationImageID)
		if err == nil {
			v.images[page] = seq
			return seq, nil
		}
	}
	v.log.Warn("Illustration unavailable", zap.Int("page", page), zap.String("path", path), zap.Error(err))
	v.imageErrs[page] = err
	return "", err
}

func (v *ReaderView) resetImages() {
	clear(v.images)
	clear(v.imageErrs)
}

// wrapText wraps paragraphs to width cells. Words wider than a line are split.
func wrapText(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var (
			current strings.Builder
			used    int
		)
		flush := func() {
			lines = append(lines, current.String())
			current.Reset()
			used = 0
		}
		for _, word := range words {
			w := runewidth.StringWidth(word)
			for w > width {
				if used > 0 {
					flush()
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(word)
					head = word[:size]
				}
				lines = append(lines, head)
				word = word[len(head):]
				w = runewidth.StringWidth(word)
			}
			switch {
			case w == 0:
			case used == 0:
				current.WriteString(word)
				used = w
			case used+1+w <= width:
				current.WriteString(" ")
				current.WriteString(word)
				used += 1 + w
			default:
				flush()
				current.WriteString(word)
				used = w
			}
		}
		if used > 0 {
			flush()
		}
	}

	// Collapse runs of blank lines
	out := make([]string, 0, len(lines))
	for i, l := range lines {
		if l == "" && (i == 0 || lines[i-1] == "") {
			continue
		}
		out = append(out, l)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
