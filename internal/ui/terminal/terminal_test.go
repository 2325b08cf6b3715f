package terminal

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeString(t *testing.T) {
	assert.Equal(t, "Kitty", TermModeKitty.String())
	assert.Equal(t, "iTerm2", TermModeIterm.String())
	assert.Equal(t, "Sixel", TermModeSixel.String())
	assert.Equal(t, "None", TermModeNone.String())
}

func TestLoadIllustrationFits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.png")
	require.NoError(t, imaging.Save(imaging.New(1600, 900, color.NRGBA{R: 200, A: 255}), path))

	img, err := LoadIllustration(path, 40, 10)
	require.NoError(t, err)

	b := img.Bounds()
	assert.LessOrEqual(t, b.Dx(), 40*CellWidth)
	assert.LessOrEqual(t, b.Dy(), 10*CellHeight)
	assert.Equal(t, 10*CellHeight, b.Dy())
}

func TestLoadIllustrationErrors(t *testing.T) {
	_, err := LoadIllustration(filepath.Join(t.TempDir(), "missing.png"), 10, 10)
	assert.Error(t, err)

	_, err = LoadIllustration("ignored.png", 0, 10)
	assert.Error(t, err)
}

func TestRenderImageToString(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	out, err := RenderImageToString(img, TermModeNone)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = RenderImageToString(img, TermModeKitty, IllustrationImageID)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "\x1b_G"))
}

func TestClearImages(t *testing.T) {
	assert.Contains(t, ClearImages(TermModeKitty), "i=1989")
	assert.Equal(t, "\x1b[2J\x1b[H", ClearImages(TermModeSixel))
	assert.Empty(t, ClearImages(TermModeNone))
}
