package terminal

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"

	"github.com/BourgeoisBear/rasterm"
	"github.com/disintegration/imaging"
)

// TermImageMode represents the terminal's image display capability
type TermImageMode int

const (
	// TermModeNone indicates no image support
	TermModeNone TermImageMode = iota
	// TermModeKitty indicates Kitty graphics protocol support
	TermModeKitty
	// TermModeIterm indicates iTerm2 graphics protocol support
	TermModeIterm
	// TermModeSixel indicates Sixel graphics protocol support
	TermModeSixel
)

// IllustrationImageID is the Kitty image ID used for page illustrations
const IllustrationImageID uint32 = 1989

// Approximate size of a terminal cell in pixels
const (
	CellWidth  = 8
	CellHeight = 16
)

// String returns a human-readable name for the terminal mode
func (m TermImageMode) String() string {
	switch m {
	case TermModeKitty:
		return "Kitty"
	case TermModeIterm:
		return "iTerm2"
	case TermModeSixel:
		return "Sixel"
	default:
		return "None"
	}
}

// DetectTerminalMode checks which image protocol the terminal supports
func DetectTerminalMode() TermImageMode {
	if rasterm.IsKittyCapable() {
		return TermModeKitty
	}
	if rasterm.IsItermCapable() {
		return TermModeIterm
	}
	if capable, _ := rasterm.IsSixelCapable(); capable {
		return TermModeSixel
	}
	return TermModeNone
}

// LoadIllustration opens the image at path and scales it down to fit a box
// of cols x rows terminal cells.
func LoadIllustration(path string, cols, rows int) (image.Image, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("no room for illustration (%dx%d cells)", cols, rows)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("unable to open illustration: %w", err)
	}
	return imaging.Fit(img, cols*CellWidth, rows*CellHeight, imaging.Lanczos), nil
}

// ImageToPaletted converts an image to a paletted image required for Sixel
func ImageToPaletted(img image.Image) *image.Paletted {
	bounds := img.Bounds()
	paletted := image.NewPaletted(bounds, palette.Plan9)
	draw.Draw(paletted, bounds, img, bounds.Min, draw.Src)
	return paletted
}

// RenderImageToString renders an image to a string based on the terminal mode.
// For Kitty protocol, an optional image ID can be passed for targeted clearing.
func RenderImageToString(img image.Image, mode TermImageMode, kittyID ...uint32) (string, error) {
	var buf bytes.Buffer
	var renderErr error

	switch mode {
	case TermModeKitty:
		opts := rasterm.KittyImgOpts{}
		if len(kittyID) > 0 {
			opts.ImageId = kittyID[0]
		}
		renderErr = rasterm.KittyWriteImage(&buf, img, opts)
	case TermModeIterm:
		renderErr = rasterm.ItermWriteImage(&buf, img)
	case TermModeSixel:
		// Write to buffer instead of stdout for proper bubbletea integration
		renderErr = rasterm.SixelWriteImage(&buf, ImageToPaletted(img))
	default:
		return "", nil
	}

	if renderErr != nil {
		return "", renderErr
	}
	return buf.String(), nil
}

// SupportsImages returns true if the terminal supports any image protocol
func SupportsImages() bool {
	return DetectTerminalMode() != TermModeNone
}

// ClearImages returns the escape sequence that removes illustrations before
// the page under them changes.
func ClearImages(mode TermImageMode) string {
	switch mode {
	case TermModeKitty:
		// a=d (action=delete), i=<id>
		return fmt.Sprintf("\x1b_Ga=d,i=%d\x1b\\", IllustrationImageID)
	case TermModeIterm, TermModeSixel:
		// Images live in the character grid; clearing the screen removes them
		return "\x1b[2J\x1b[H"
	default:
		return ""
	}
}
