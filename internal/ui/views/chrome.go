package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/justyntemme/folio/internal/reader"
	"github.com/justyntemme/folio/internal/ui/styles"
)

const maxProgressWidth = 40

// segment is a rendered piece of the chrome bar, clickable when target is set
type segment struct {
	text   string
	target *Target
}

func button(label string, c reader.Control, disabled bool) segment {
	style := styles.Button
	if disabled {
		style = styles.ButtonDisabled
	}
	return segment{text: style.Render(label), target: &Target{Kind: TargetControl, Control: c}}
}

func gap(n int) segment {
	return segment{text: strings.Repeat(" ", n)}
}

func segWidth(segs []segment) int {
	w := 0
	for _, s := range segs {
		w += lipgloss.Width(s.text)
	}
	return w
}

// renderChrome renders the bottom bar: page buttons, indicator, progress and
// the preference controls.
func (v *ReaderView) renderChrome() (string, []zone) {
	c := v.chrome
	fontMin, fontMax := false, false
	if v.ctrl != nil {
		level := v.ctrl.Prefs.FontLevel()
		fontMin, fontMax = level == reader.MinFontLevel, level == reader.MaxFontLevel
	}

	left := []segment{
		button("< Prev", reader.ControlPrev, c.PrevDisabled),
		gap(1),
		button("Next >", reader.ControlNext, c.NextDisabled),
		gap(2),
		{text: styles.Indicator.Render(c.Indicator)},
		gap(1),
	}
	right := []segment{
		gap(1),
		button("Contents", reader.ControlTOCToggle, false),
		gap(1),
		button("Theme", reader.ControlTheme, false),
		gap(1),
		button("A-", reader.ControlFontDecrease, fontMin),
		gap(1),
		button("A+", reader.ControlFontIncrease, fontMax),
	}

	barWidth := min(maxProgressWidth, v.width-segWidth(left)-segWidth(right))
	middle := []segment{}
	if barWidth >= 3 {
		middle = append(middle, segment{text: renderProgressBar(barWidth, c.Progress)})
	}
	fill := max(0, v.width-segWidth(left)-segWidth(middle)-segWidth(right))
	middle = append(middle, gap(fill))

	var (
		b     strings.Builder
		zones []zone
		x     int
		y     = v.height - 1
	)
	for _, group := range [][]segment{left, middle, right} {
		for _, s := range group {
			w := lipgloss.Width(s.text)
			if s.target != nil {
				zones = append(zones, zone{x0: x, x1: x + w, y: y, target: *s.target})
			}
			b.WriteString(s.text)
			x += w
		}
	}
	return b.String(), zones
}

// renderProgressBar renders a visual progress bar using Unicode block characters
// width is the total character width, progress is 0.0-1.0
func renderProgressBar(width int, progress float64) string {
	if width < 3 {
		width = 3
	}
	progress = min(1, max(0, progress))

	const (
		empty    = "░"
		filled   = "█"
		partials = "▏▎▍▌▋▊▉" // 1/8 to 7/8 filled
	)

	filledWidth := progress * float64(width)
	fullBlocks := min(width, int(filledWidth))
	remainder := filledWidth - float64(fullBlocks)

	var bar strings.Builder
	bar.WriteString(strings.Repeat(filled, fullBlocks))

	if fullBlocks < width {
		if idx := min(7, int(remainder*8)); idx > 0 {
			bar.WriteRune([]rune(partials)[idx-1])
			fullBlocks++
		}
	}

	return styles.ProgressFill.Render(bar.String()) +
		styles.ProgressTrack.Render(strings.Repeat(empty, width-fullBlocks))
}

// tocGeometry places the contents dialog on screen
type tocGeometry struct {
	left, top     int
	outerW        int
	outerH        int
	innerW        int
	offset        int
	visible       int
	contentX      int
	contentY      int
	dialogWidth   int
	entriesOffset int
}

func (v *ReaderView) tocGeometry() tocGeometry {
	var g tocGeometry
	n := len(v.book.TOC)

	// lipgloss widths include padding but not the border
	g.dialogWidth = max(16, min(tocMaxWidth, v.width-4))
	g.outerW = g.dialogWidth + 2
	g.innerW = g.dialogWidth - 4

	g.visible = max(0, min(n, v.height-10))
	if n > 0 && g.visible == 0 {
		g.visible = 1
	}
	if v.tocCursor >= g.visible {
		g.offset = v.tocCursor - g.visible + 1
	}

	// title, blank, entries (at least one row), blank, help
	rows := 2 + max(1, g.visible) + 2
	g.outerH = rows + 4

	g.left = max(0, (v.width-g.outerW)/2)
	g.top = max(0, (v.height-g.outerH)/2)
	g.contentX = g.left + 3
	g.contentY = g.top + 2
	g.entriesOffset = 2
	return g
}

// renderTOC renders the contents dialog centred over a blank backdrop
func (v *ReaderView) renderTOC() (string, []zone) {
	g := v.tocGeometry()
	var (
		lines []string
		zones []zone
	)

	const closeLabel = "[x]"
	title := styles.DialogTitle.Render(styles.TruncateText("Contents", g.innerW-len(closeLabel)-1))
	lines = append(lines, title+
		strings.Repeat(" ", max(0, g.innerW-lipgloss.Width(title)-len(closeLabel)))+
		styles.HelpKey.Render(closeLabel))
	zones = append(zones, zone{
		x0:     g.contentX + g.innerW - len(closeLabel),
		x1:     g.contentX + g.innerW,
		y:      g.contentY,
		target: Target{Kind: TargetControl, Control: reader.ControlTOCClose},
	})
	lines = append(lines, "")

	if len(v.book.TOC) == 0 {
		lines = append(lines, styles.MutedText.Render("No contents"))
	}
	for j := 0; j < g.visible; j++ {
		i := g.offset + j
		e := v.book.TOC[i]

		marker, style := "   ", styles.ListItem
		switch {
		case i == v.tocCursor:
			marker, style = "> ", styles.ListItemSelected
			if i == v.chrome.ActiveTOC {
				marker = ">*"
			}
			marker += " "
		case i == v.chrome.ActiveTOC:
			marker, style = " * ", styles.ListItemActive
		}
		num := fmt.Sprintf("%d", e.Page+1)
		labelW := max(1, g.innerW-len(marker)-len(num)-1)
		label := runewidth.FillRight(styles.TruncateText(e.Title, labelW), labelW)
		lines = append(lines, style.Render(marker+label+" "+num))

		zones = append(zones, zone{
			x0:     g.contentX,
			x1:     g.contentX + g.innerW,
			y:      g.contentY + g.entriesOffset + j,
			target: Target{Kind: TargetTOCEntry, Index: i},
		})
	}

	lines = append(lines, "", styles.MutedText.Render(styles.TruncateText("tab/S-tab move  enter open  esc close", g.innerW)))

	dialog := styles.Dialog.Width(g.dialogWidth).Render(strings.Join(lines, "\n"))

	var b strings.Builder
	pad := strings.Repeat(" ", g.left)
	row := 0
	for ; row < g.top; row++ {
		b.WriteString("\n")
	}
	for _, l := range strings.Split(dialog, "\n") {
		b.WriteString(pad + l + "\n")
		row++
	}
	for ; row < v.height; row++ {
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n"), zones
}

// tocHit resolves a click while the contents dialog is open. Anything outside
// the dialog is the backdrop.
func (v *ReaderView) tocHit(x, y int) Target {
	g := v.tocGeometry()
	if x < g.left || x >= g.left+g.outerW || y < g.top || y >= g.top+g.outerH {
		return Target{Kind: TargetControl, Control: reader.ControlBackdrop}
	}
	_, zones := v.renderTOC()
	return hit(zones, x, y)
}
